package main

import (
	"log"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/routes"
	"github.com/shashiranjanraj/vastra/database/seeders"
	"github.com/shashiranjanraj/vastra/pkg/app"
	"github.com/shashiranjanraj/vastra/pkg/database"

	// Register migrations for `./server migrate`.
	_ "github.com/shashiranjanraj/vastra/database/migrations"
)

func main() {
	app.New().
		Routes(routes.RegisterAPI).
		Seeders(func() {
			if err := seeders.RunAll(database.DB); err != nil {
				log.Fatal(err)
			}
		}).
		AutoMigrate(models.All()...).
		Run()
}
