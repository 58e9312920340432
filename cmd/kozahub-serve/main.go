package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/monarch-initiative/kozahub-dashboard/config"

	"github.com/gofiber/fiber/v3"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/static"
)

var (
	configFlag = flag.String("config", "config.yml", "config file location")
	listenFlag = flag.String("listen", ":8080", "listen address")
	siteFlag   = flag.String("site", "site", "rendered site directory")
)

// Local preview server for the rendered dashboard. Production serving is a
// static host; this exists so `kozahub-collect && kozahub-render` output
// can be checked before publishing.
func main() {
	flag.Parse()

	conf, err := config.LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open config %s: %v\n", *configFlag, err)
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		AppName:      "kozahub-dashboard",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	app.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/data/dashboard-data.json", func(c fiber.Ctx) error {
		return c.SendFile(conf.Common.SnapshotFile)
	})
	app.Get("/*", static.New(*siteFlag))

	if err := app.Listen(*listenFlag); err != nil {
		fmt.Fprintf(os.Stderr, "server stopped: %v\n", err)
		os.Exit(1)
	}
}
