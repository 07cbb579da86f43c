package main

import (
	"fmt"
	"log"
	"os"

	"foodzippy/backend/foundation/web"
	"foodzippy/backend/internal/auth"
	"foodzippy/backend/internal/commands"
	"foodzippy/backend/internal/pkg/config"
	"foodzippy/backend/internal/pkg/repository/postgresql"
	"foodzippy/backend/internal/router"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		log.Fatalln("main: error:", err)
	}
}

func run() error {
	var flags struct {
		conf.Version
		ConfigPath string `conf:"default:config.yaml"`
		Web        struct {
			Port string `conf:"default::8080"`
		}
	}
	flags.Version.SVN = "1.0.0"
	flags.Version.Desc = "vendor onboarding and field attendance service"

	if err := conf.Parse(os.Args[1:], "FOODZIPPY", &flags); err != nil {
		switch err {
		case conf.ErrHelpWanted:
			usage, err := conf.Usage("FOODZIPPY", &flags)
			if err != nil {
				return errors.Wrap(err, "generating config usage")
			}
			fmt.Println(usage)
			return nil
		case conf.ErrVersionWanted:
			version, err := conf.VersionString("FOODZIPPY", &flags)
			if err != nil {
				return errors.Wrap(err, "generating config version")
			}
			fmt.Println(version)
			return nil
		}
		return errors.Wrap(err, "parsing config")
	}

	cfg, err := config.NewConfig(flags.ConfigPath)
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	postgresDB := postgresql.NewDB(cfg)
	defer postgresDB.Close()

	commands.MigrateUP(postgresDB)

	redisDB := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisDB.Close()

	authenticator, err := auth.NewAuth(cfg.JWTKey)
	if err != nil {
		return errors.Wrap(err, "constructing authenticator")
	}

	app := web.NewApp()

	r := router.NewRouter(app, postgresDB, redisDB, flags.Web.Port, authenticator, cfg)

	return r.Init()
}
