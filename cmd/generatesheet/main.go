package main

import (
	"flag"
	"log"
	"time"

	"lsst.org.au/signin/config"
	"lsst.org.au/signin/sheet"
	"lsst.org.au/signin/utils"
)

// Pre-generates a day's sign-in workbook, for printing blank forms or
// preparing sheets ahead of an event.
func main() {
	dateStr := flag.String("date", time.Now().Format(utils.DateLayout), "sheet date (yyyy-mm-dd)")
	flag.Parse()

	date, err := time.ParseInLocation(utils.DateLayout, *dateStr, time.Local)
	if err != nil {
		log.Fatalf("invalid date %q: %v", *dateStr, err)
	}

	settings, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	store := sheet.NewStore(settings.SaveDirectory, settings.SheetPassword)
	artifact, err := store.OpenOrCreate(date)
	if err != nil {
		log.Fatal(err)
	}
	defer artifact.Close()

	log.Printf("sheet ready at %s", artifact.Path())
}
