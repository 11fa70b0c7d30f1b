package main

import (
	"bufio"
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"lsst.org.au/signin/attendance"
	"lsst.org.au/signin/config"
	"lsst.org.au/signin/core"
	"lsst.org.au/signin/reader"
	"lsst.org.au/signin/sheet"
	"lsst.org.au/signin/web"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := core.Open(settings.DatabasePath, logLevel(settings.LogLevel))
	if err != nil {
		log.Fatal(err)
	}

	store := sheet.NewStore(settings.SaveDirectory, settings.SheetPassword)
	svc := attendance.NewService(db, store)
	defer svc.Close()

	// Today's sheet is live from the moment the kiosk starts.
	if _, err := svc.OpenSheet(time.Now()); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Keyboard-wedge readers type the token digits and press Enter, so
	// stdin is the tap stream.
	src := reader.NewChannelSource()
	go pumpStdin(ctx, src)

	dispatcher := reader.NewDispatcher(src, func(token int64, at time.Time) error {
		result, err := svc.ProcessTap(token, at)
		if err != nil {
			if errors.Is(err, attendance.ErrBusy) {
				return nil
			}
			var reg *attendance.RegistrationRequired
			if errors.As(err, &reg) {
				log.Printf("unregistered token %d: complete ticket %s via the admin screen", reg.Ticket.Token, reg.Ticket.ID)
				return nil
			}
			return err
		}
		log.Println(result.Status)
		return nil
	})
	go dispatcher.Run(ctx)

	r := web.NewRouter(svc, settings)
	if err := r.Run(settings.ListenAddress); err != nil {
		log.Fatal(err)
	}
}

func pumpStdin(ctx context.Context, src *reader.ChannelSource) {
	defer close(src.C)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		token, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			log.Printf("ignoring unreadable card data %q", line)
			continue
		}
		select {
		case <-ctx.Done():
			return
		case src.C <- token:
		}
	}
}

func logLevel(name string) core.LogLevel {
	switch name {
	case "silent":
		return core.LogLevelSilent
	case "error":
		return core.LogLevelError
	case "info":
		return core.LogLevelInfo
	default:
		return core.LogLevelWarn
	}
}
