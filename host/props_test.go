package host

import (
	"reflect"
	"testing"
)

func TestProps(t *testing.T) {
	props := NewProps()
	level := props.MustRegister("level", setInt(0, 10), 5)

	if err := props.Set("level", 7); err != nil {
		t.Fatal(err)
	}
	if got := level.Load().(int); got != 7 {
		t.Errorf("want 7, got %v", got)
	}
	if err := props.Set("level", 11); err == nil {
		t.Error("expected range error")
	}
	if got, err := props.Get("level"); err != nil || got.(int) != 7 {
		t.Errorf("Get = %v, %v", got, err)
	}
	if err := props.Set("volume", 1); err == nil {
		t.Error("expected unknown property error")
	}
	if _, err := props.Get("volume"); err == nil {
		t.Error("expected unknown property error")
	}
}

func TestPropsKeys(t *testing.T) {
	props := NewProps()
	props.MustRegister("level", setInt(0, 10), 5)
	props.MustRegister("bypass", setBool, false)
	want := []string{"bypass", "level"}
	if got := props.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestRegisterRejectsBadInitialValue(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewProps().MustRegister("level", setInt(0, 10), 20)
}
