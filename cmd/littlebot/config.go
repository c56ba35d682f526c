package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/agrif/littlebots/policy"
)

type config struct {
	Policy   string
	Sanitize bool
	Connect  string
	Listen   string
	Redis    string
	Session  string
	LogLevel log.Level
	JSONLogs bool
}

// loadConfig reads flags, falling back to LITTLEBOT_* environment variables
// for anything not given on the command line.
func loadConfig(args []string, getenv func(string) string) (config, error) {
	fs := flag.NewFlagSet("littlebot", flag.ContinueOnError)
	policyName := fs.String("policy", envOr(getenv, "LITTLEBOT_POLICY", "guard"),
		"decision policy ("+strings.Join(policy.Names(), ", ")+")")
	sanitize := fs.Bool("sanitize", boolEnv(getenv, "LITTLEBOT_SANITIZE", false),
		"replace actions the referee would reject with guard")
	connect := fs.String("connect", getenv("LITTLEBOT_CONNECT"),
		"websocket URL of a referee; default plays on stdin/stdout")
	listen := fs.String("listen", getenv("LITTLEBOT_LISTEN"),
		"serve sessions over websocket on this address, e.g. :8080")
	redisAddr := fs.String("redis", getenv("LITTLEBOT_REDIS"),
		"Redis address for the turn journal (e.g. localhost:6379); empty disables it")
	session := fs.String("session", envOr(getenv, "LITTLEBOT_SESSION", defaultSession()),
		"session name used in logs and the journal")
	level := fs.String("log-level", envOr(getenv, "LITTLEBOT_LOG_LEVEL", "info"), "log level")
	jsonLogs := fs.Bool("log-json", boolEnv(getenv, "LITTLEBOT_LOG_JSON", false), "log as JSON")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if _, err := policy.ByName(*policyName); err != nil {
		return config{}, err
	}
	lvl, err := log.ParseLevel(*level)
	if err != nil {
		return config{}, err
	}
	if *connect != "" && *listen != "" {
		return config{}, fmt.Errorf("-connect and -listen are exclusive")
	}

	return config{
		Policy:   *policyName,
		Sanitize: *sanitize,
		Connect:  *connect,
		Listen:   *listen,
		Redis:    *redisAddr,
		Session:  *session,
		LogLevel: lvl,
		JSONLogs: *jsonLogs,
	}, nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func boolEnv(getenv func(string) string, key string, fallback bool) bool {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func defaultSession() string {
	return fmt.Sprintf("%d-%d", os.Getpid(), time.Now().Unix())
}
