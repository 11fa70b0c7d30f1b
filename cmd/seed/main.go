package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
	"lsst.org.au/signin/config"
	"lsst.org.au/signin/core"
	"lsst.org.au/signin/utils"
)

// rosterEntry is one line of the YAML roster file.
type rosterEntry struct {
	Token int64  `yaml:"token"`
	Name  string `yaml:"name"`
}

func main() {
	rosterPath := flag.String("roster", "", "roster file to import (.yml or .csv, columns token,name)")
	flag.Parse()

	settings, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := core.Open(settings.DatabasePath, core.LogLevelInfo)
	if err != nil {
		log.Fatal(err)
	}

	if *rosterPath == "" {
		log.Println("schema migrated, no roster to import")
		return
	}

	entries, err := loadRoster(*rosterPath)
	if err != nil {
		log.Fatal(err)
	}

	directory := core.NewStaffDirectory(db)
	imported := 0
	for _, entry := range entries {
		if err := directory.Register(entry.Token, entry.Name); err != nil {
			log.Printf("skipping %s (%d): %v", entry.Name, entry.Token, err)
			continue
		}
		imported++
	}
	log.Printf("imported %d of %d staff members", imported, len(entries))
}

func loadRoster(path string) ([]rosterEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if filepath.Ext(path) == ".csv" {
		records, err := utils.ParseCSV(f)
		if err != nil {
			return nil, err
		}
		var entries []rosterEntry
		for i, record := range records {
			if len(record) < 2 {
				continue
			}
			token, err := strconv.ParseInt(record[0], 10, 64)
			if err != nil {
				// Assume a header row on line one, fail anywhere else.
				if i == 0 {
					continue
				}
				return nil, err
			}
			entries = append(entries, rosterEntry{Token: token, Name: record[1]})
		}
		return entries, nil
	}

	var entries []rosterEntry
	if err := yaml.NewDecoder(f).Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}
