package eventapi

import "testing"

func TestRecordFirstString(t *testing.T) {
	rec := Record{
		"email":   "  a@x.com ",
		"mail":    "ignored@x.com",
		"country": "",
		"pays":    "Côte d'Ivoire",
		"id":      float64(42),
		"ref":     "null",
	}

	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"first key wins", []string{"email", "mail"}, "a@x.com"},
		{"skips empty values", []string{"country", "pays"}, "Côte d'Ivoire"},
		{"skips placeholder null", []string{"ref", "email"}, "a@x.com"},
		{"numeric id rendered without decimals", []string{"id"}, "42"},
		{"missing keys", []string{"nope", "nada"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rec.FirstString(tt.keys...); got != tt.want {
				t.Errorf("FirstString(%v) = %q, want %q", tt.keys, got, tt.want)
			}
		})
	}
}

func TestRecordNestedString(t *testing.T) {
	rec := Record{
		"registration": map[string]any{"status": "completed"},
		"flat":         "x",
	}

	if got := rec.NestedString("registration", "status"); got != "completed" {
		t.Errorf(`NestedString("registration","status") = %q, want "completed"`, got)
	}
	if got := rec.NestedString("registration", "missing"); got != "" {
		t.Errorf("NestedString on missing leaf = %q, want empty", got)
	}
	if got := rec.NestedString("flat", "status"); got != "" {
		t.Errorf("NestedString through non-object = %q, want empty", got)
	}
}

func TestRecordFirstBool(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		keys []string
		want bool
	}{
		{"native bool", Record{"check_in": true}, []string{"check_in"}, true},
		{"numeric one", Record{"present": float64(1)}, []string{"present"}, true},
		{"string oui", Record{"checked_in": "Oui"}, []string{"checked_in"}, true},
		{"string non", Record{"checked_in": "non"}, []string{"checked_in"}, false},
		{"first recognizable wins", Record{"a": "maybe", "b": "yes"}, []string{"a", "b"}, true},
		{"missing", Record{}, []string{"check_in"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.FirstBool(tt.keys...); got != tt.want {
				t.Errorf("FirstBool(%v) = %v, want %v", tt.keys, got, tt.want)
			}
		})
	}
}
