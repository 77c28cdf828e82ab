package main

import (
	"log"
	"net/http"

	"github.com/rs/cors"

	"github.com/insighteck/todo-app/internal/config"
	"github.com/insighteck/todo-app/internal/storage"
	"github.com/insighteck/todo-app/internal/tasks"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	store := storage.NewFileStore(cfg.DataFile)
	col, err := tasks.NewCollection(store)
	if err != nil {
		log.Fatal("failed to load task list: ", err)
	}
	log.Printf("Loaded task list from %s", cfg.DataFile)

	mux := tasks.NewMux(col)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})
	handler := c.Handler(mux)

	log.Printf("API server is running on %s", cfg.Addr())
	log.Fatal(http.ListenAndServe(cfg.Addr(), handler))
}
