package main

import (
	"flag"
	"log"
	"os"

	"github.com/insighteck/todo-app/internal/config"
	"github.com/insighteck/todo-app/internal/console"
	"github.com/insighteck/todo-app/internal/storage"
	"github.com/insighteck/todo-app/internal/tasks"
)

func main() {
	cfg := config.Load()
	dataFile := flag.String("file", cfg.DataFile, "Path to the task list file")
	flag.Parse()

	store := storage.NewFileStore(*dataFile)
	col, err := tasks.NewCollection(store)
	if err != nil {
		log.Fatal("failed to load task list: ", err)
	}

	if err := console.New(col, os.Stdin, os.Stdout).Run(); err != nil {
		log.Fatal(err)
	}
}
