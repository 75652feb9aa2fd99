package log_test

import (
	"testing"

	"github.com/docuchat/ragengine/log"
)

func TestPackageLevelFuncs(t *testing.T) {
	old := log.Default
	defer func() { log.Default = old }()

	rec := &recordingLogger{}
	log.Default = rec

	log.Debug("d")
	log.Debugf("d %d", 1)
	log.Info("i")
	log.Infof("i %d", 1)
	log.Warn("w")
	log.Warnf("w %d", 1)
	log.Error("e")
	log.Errorf("e %d", 1)
	log.Fatal("f")
	log.Fatalf("f %d", 1)

	if rec.calls != 10 {
		t.Errorf("expected 10 logger calls, got %d", rec.calls)
	}
}

func TestSetLevel(t *testing.T) {
	// Exercise all branches including the fallback.
	for _, lvl := range []string{
		log.LevelDebug, log.LevelInfo, log.LevelWarn,
		log.LevelError, log.LevelFatal, "bogus",
	} {
		log.SetLevel(lvl)
	}
	log.SetLevel(log.LevelInfo)
}

type recordingLogger struct{ calls int }

func (r *recordingLogger) Debug(args ...any)                 { r.calls++ }
func (r *recordingLogger) Debugf(format string, args ...any) { r.calls++ }
func (r *recordingLogger) Info(args ...any)                  { r.calls++ }
func (r *recordingLogger) Infof(format string, args ...any)  { r.calls++ }
func (r *recordingLogger) Warn(args ...any)                  { r.calls++ }
func (r *recordingLogger) Warnf(format string, args ...any)  { r.calls++ }
func (r *recordingLogger) Error(args ...any)                 { r.calls++ }
func (r *recordingLogger) Errorf(format string, args ...any) { r.calls++ }
func (r *recordingLogger) Fatal(args ...any)                 { r.calls++ }
func (r *recordingLogger) Fatalf(format string, args ...any) { r.calls++ }
