package main

import (
	"io"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/agrif/littlebots/journal"
	"github.com/agrif/littlebots/policy"
	"github.com/agrif/littlebots/protocol"
	"github.com/agrif/littlebots/robot"
	"github.com/agrif/littlebots/server"
	"github.com/agrif/littlebots/wsconn"
)

const journalTTL = 24 * time.Hour

func main() {
	// stdout carries the protocol, so logs go to stderr only
	log.SetOutput(os.Stderr)
	os.Exit(run(os.Args[1:], os.Getenv, os.Stdin, os.Stdout))
}

// run plays one session and returns the process exit status.
func run(args []string, getenv func(string) string, stdin io.Reader, stdout io.Writer) int {
	cfg, err := loadConfig(args, getenv)
	if err != nil {
		log.Errorf("config: %v", err)
		return 2
	}
	log.SetLevel(cfg.LogLevel)
	if cfg.JSONLogs {
		log.SetFormatter(&log.JSONFormatter{})
	}

	rec, err := journal.NewRedis(cfg.Redis, journalTTL)
	if err != nil {
		log.Errorf("journal: %v", err)
		return 1
	}
	defer rec.Close()
	stats := journal.NewMemory()

	policies := func(session string) robot.Policy {
		// cfg.Policy was validated by loadConfig
		p, _ := policy.ByName(cfg.Policy)
		if cfg.Sanitize {
			p = policy.Sanitize(p)
		}
		p = journal.Wrap(p, stats, session)
		return journal.Wrap(p, rec, session)
	}

	if cfg.Listen != "" {
		s := server.NewRobotServer(func(id string) robot.Policy {
			return policies(cfg.Session + "/" + id)
		})
		log.Infof("littlebot serving %s on %s", server.URI_WS, cfg.Listen)
		log.Errorln(http.ListenAndServe(cfg.Listen, s.Routes()))
		return 1
	}

	var (
		in  io.Reader = stdin
		out io.Writer = stdout
	)
	if cfg.Connect != "" {
		conn, err := wsconn.Dial(cfg.Connect)
		if err != nil {
			log.Errorf("connect %s: %v", cfg.Connect, err)
			return 1
		}
		defer conn.Close()
		in, out = conn, conn
		log.Infof("littlebot connected to %s", cfg.Connect)
	}

	entry := log.WithField("session", cfg.Session)
	err = robot.NewRunner(protocol.New(in, out), policies(cfg.Session)).WithLogger(entry).Run()

	snap := stats.Snapshot()
	entry.WithField("actions", snap.ByAction).Infof("played %d turns", snap.Total)
	if protocol.IsEndOfStream(err) {
		entry.Info("referee closed the session")
		return 0
	}
	entry.Errorf("session failed: %v", err)
	return 1
}
