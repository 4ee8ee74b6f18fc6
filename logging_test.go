package vantage

import (
	"testing"
)

func TestApp_Logger(t *testing.T) {
	// No logger resource means a usable no-op, never nil.
	app := NewAppBuilder().Build()
	if app.Logger() == nil {
		t.Fatalf("Expected a fallback logger")
	}
	app.Logger().Infof("goes nowhere")

	var nilApp *App
	if nilApp.Logger() == nil {
		t.Fatalf("Expected a fallback logger for a nil app")
	}

	// Once LoggingModule is installed, its logger is served.
	app2 := NewAppBuilder().
		UseModule(LoggingModule{Prefix: "test"}).
		Build()

	if _, ok := app2.Logger().(*DefaultLogger); !ok {
		t.Errorf("Expected the installed DefaultLogger, got %T", app2.Logger())
	}
}
