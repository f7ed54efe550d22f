package rowan

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLogWriteLevelsAndCategories(t *testing.T) {
	log, logs := observedLog()

	log.Write(LogInfo, LogGame, "spawned %d", 3)
	log.Write(LogWarning, LogEngine, "slow frame")
	log.Write(LogError, LogScript, "bad step")
	log.Write(LogInfo, LogCategory(200), "fallback")

	tests := []struct {
		msg    string
		level  zapcore.Level
		logger string
	}{
		{"spawned 3", zapcore.InfoLevel, "game"},
		{"slow frame", zapcore.WarnLevel, "engine"},
		{"bad step", zapcore.ErrorLevel, "script"},
		{"fallback", zapcore.InfoLevel, "core"},
	}
	all := logs.All()
	if len(all) != len(tests) {
		t.Fatalf("got %d entries, want %d", len(all), len(tests))
	}
	for i, tt := range tests {
		e := all[i]
		if e.Message != tt.msg || e.Level != tt.level || e.LoggerName != tt.logger {
			t.Errorf("entry %d = %q/%v/%q, want %q/%v/%q",
				i, e.Message, e.Level, e.LoggerName, tt.msg, tt.level, tt.logger)
		}
	}
}

func TestLogWriteOnce(t *testing.T) {
	log, logs := observedLog()
	for i := 0; i < 3; i++ {
		log.WriteOnce(LogWarning, LogEngine, "key %d dropped", i)
	}
	log.WriteOnce(LogWarning, LogEngine, "other")

	if logs.Len() != 2 {
		t.Fatalf("got %d entries, want 2", logs.Len())
	}
	if logs.All()[0].Message != "key 0 dropped" {
		t.Errorf("first message = %q", logs.All()[0].Message)
	}
}

func TestLogNilSafe(t *testing.T) {
	var log *Log
	log.Write(LogInfo, LogCore, "ignored")
	log.WriteOnce(LogInfo, LogCore, "ignored")
}

func TestLogScreenEntries(t *testing.T) {
	log := NewNopLog()
	log.Write(LogInfo, LogCore, "hidden")
	if len(log.Entries()) != 0 {
		t.Fatal("entries kept while screen rendering is off")
	}

	log.SetRenderToScreen(true)
	log.Write(LogInfo, LogCore, "old")
	log.Write(LogInfo, LogCore, "new")

	entries := log.Entries()
	if len(entries) != 2 || entries[0].Message != "new" || entries[1].Message != "old" {
		t.Fatalf("entries not newest first: %v", entries)
	}

	log.Update(0.5)
	if !near(entries[0].Lifetime, 0.5) {
		t.Errorf("newest lifetime = %f, want 0.5", entries[0].Lifetime)
	}
	if entries[1].Lifetime != 1 {
		t.Errorf("older entry aged to %f while newer is live", entries[1].Lifetime)
	}
	if entries[0].Alpha >= 1 || entries[0].Alpha <= 0 {
		t.Errorf("newest alpha = %f, want fading", entries[0].Alpha)
	}

	log.Update(0.6)
	log.Update(0)
	entries = log.Entries()
	if len(entries) != 1 || entries[0].Message != "old" {
		t.Fatalf("expired entry not dropped: %v", entries)
	}

	log.SetRenderToScreen(false)
	if len(log.Entries()) != 0 {
		t.Error("disabling screen rendering should clear entries")
	}
}

func TestLogErrorStaysLonger(t *testing.T) {
	log := NewNopLog()
	log.SetRenderToScreen(true)
	log.Write(LogError, LogCore, "boom")
	for i := 0; i < 10; i++ {
		log.Update(1)
	}
	if len(log.Entries()) != 1 {
		t.Error("error entry expired too early")
	}
}

func TestNewProductionLog(t *testing.T) {
	if _, err := NewProductionLog("nonsense"); err == nil {
		t.Error("expected error for unknown level")
	}
	log, err := NewProductionLog("warn")
	if err != nil {
		t.Fatal(err)
	}
	if log.Zap().Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !log.Zap().Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled")
	}
}
