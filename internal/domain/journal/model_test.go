package journal

import "testing"

func TestEntryAccessors(t *testing.T) {
	e := &Entry{Type: TypeFlare}
	if !e.IsFlare() {
		t.Error("flare entry should report IsFlare")
	}
	if _, ok := e.SleepHours(); ok {
		t.Error("expected no sleep hours without a physiological snapshot")
	}
	if _, ok := e.WeatherCondition(); ok {
		t.Error("expected no weather without an environmental snapshot")
	}
	if e.NoteText() != "" {
		t.Error("expected empty note text")
	}

	hours := 6.5
	cond := "rain"
	note := "rough night"
	e.Physiological = &Physiological{SleepHours: &hours}
	e.Environmental = &Environmental{WeatherCondition: &cond}
	e.Note = &note

	if h, ok := e.SleepHours(); !ok || h != 6.5 {
		t.Errorf("SleepHours = %f, %t", h, ok)
	}
	if c, ok := e.WeatherCondition(); !ok || c != "rain" {
		t.Errorf("WeatherCondition = %q, %t", c, ok)
	}
	if e.NoteText() != "rough night" {
		t.Errorf("NoteText = %q", e.NoteText())
	}
}

func TestEntryAccessors_EmptyWeatherCondition(t *testing.T) {
	empty := ""
	e := &Entry{Environmental: &Environmental{WeatherCondition: &empty}}
	if _, ok := e.WeatherCondition(); ok {
		t.Error("blank condition should count as absent")
	}
}

func TestValidType(t *testing.T) {
	for _, typ := range []string{TypeFlare, TypeMedication, TypeNote, TypeEnergy, TypeFood, TypeActivity} {
		if !ValidType(typ) {
			t.Errorf("%q should be valid", typ)
		}
	}
	if ValidType("mood") || ValidType("") {
		t.Error("unknown types should be invalid")
	}
}

func TestValidSeverity(t *testing.T) {
	for _, s := range []string{SeverityMild, SeverityModerate, SeveritySevere} {
		if !ValidSeverity(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	if ValidSeverity("critical") || ValidSeverity("") {
		t.Error("unknown severities should be invalid")
	}
}
