package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/meinhoongagan/taskr/config"
	"github.com/meinhoongagan/taskr/controllers"
	"github.com/meinhoongagan/taskr/cron"
	"github.com/meinhoongagan/taskr/db"
	"github.com/meinhoongagan/taskr/redis"
	"github.com/meinhoongagan/taskr/routes"
	"github.com/meinhoongagan/taskr/store"
	"github.com/meinhoongagan/taskr/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := store.New()
	h := controllers.NewHandler(s, cfg.JWTSecret, cfg.TokenTTL)
	scheduler := cron.New(s)

	database, err := db.Open(cfg.DatabaseURL)
	switch {
	case errors.Is(err, db.ErrNoDatabase):
		log.Println("Warning: DATABASE_URL is not set. Data will not survive a restart.")
	case err != nil:
		log.Fatal("Failed to connect to database: ", err)
	default:
		defer database.Close()
		if err := database.Migrate(); err != nil {
			log.Fatal(err)
		}
		snap, err := database.LoadSnapshot(ctx)
		if err != nil {
			log.Fatal("Failed to load data: ", err)
		}
		if err := s.Restore(snap); err != nil {
			log.Fatal("Stored data is inconsistent: ", err)
		}
		log.Printf("Loaded %d users, %d professionals, %d bookings", len(snap.Users), len(snap.Professionals), len(snap.Bookings))
		if err := scheduler.AddSnapshotFlush(cfg.SnapshotFlushSpec, database); err != nil {
			log.Fatal(err)
		}
	}

	if cfg.RedisAddr != "" {
		publisher, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisChannel)
		if err != nil {
			log.Fatal(err)
		}
		defer publisher.Close()
		s.Subscribe(publisher.Observer())
		go publisher.Run(ctx)
		h.Activity = publisher
	}

	if cfg.SMTP.Enabled() {
		if err := scheduler.AddReminders(cfg.ReminderSpec, utils.NewMailer(cfg.SMTP)); err != nil {
			log.Fatal(err)
		}
	} else {
		log.Println("Warning: SMTP is not configured. Booking reminders are disabled.")
	}

	if cfg.Cloudinary.Enabled() {
		uploader, err := utils.NewMediaUploader(cfg.Cloudinary)
		if err != nil {
			log.Fatal(err)
		}
		h.Uploader = uploader
	}

	scheduler.Start()

	app := fiber.New(fiber.Config{
		ErrorHandler: utils.RespondError,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Taskr API")
	})
	routes.Setup(app, h)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Server shutdown: %v", err)
		}
	}()

	if err := app.Listen(cfg.Addr()); err != nil {
		log.Printf("Server stopped: %v", err)
	}

	scheduler.Stop()
	if database != nil {
		if err := cron.FlushSnapshot(context.Background(), s, database); err != nil {
			log.Printf("Final snapshot flush failed: %v", err)
		} else {
			log.Println("✅ Data saved")
		}
	}
}
