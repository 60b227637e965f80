package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Entry = logrus.Entry

type Fields = logrus.Fields

func Init(level string) {
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	Log.SetOutput(os.Stdout)
	SetLevel(level)
}

// SetLevel задаёт уровень по имени. DEBUG=true всегда включает debug,
// неизвестное имя даёт info.
func SetLevel(level string) {
	if os.Getenv("DEBUG") == "true" {
		Log.SetLevel(logrus.DebugLevel)
		return
	}

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
}

// Silence глушит вывод, используется в тестах.
func Silence() {
	Log.SetOutput(io.Discard)
}
