package club

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDedupeKits(t *testing.T) {
	kits := []Kit{
		{Type: KitHome, Image: "https://cdn/k1.png", Alt: "Principal"},
		{Type: KitHome, Image: "https://cdn/k1.png", Alt: "Principal"}, // duplicate
		{Type: KitAway, Image: "https://cdn/k2.png", Alt: "Alternativo"},
		{Type: KitAlternate, Image: "https://cdn/k3.png", Alt: "Terceiro"},
		{Type: KitUnknown, Image: "https://cdn/k4.png", Alt: ""},
		{Type: KitHome, Image: "https://cdn/k1.png", Alt: "Casa"}, // different alt, kept
		{Type: KitAway, Image: "https://cdn/k5.png", Alt: ""},
		{Type: KitAway, Image: "https://cdn/k6.png", Alt: ""},
		{Type: KitAway, Image: "https://cdn/k7.png", Alt: ""},
	}

	got := DedupeKits(kits)

	if len(got) != MaxKits {
		t.Fatalf("DedupeKits() returned %d kits, want %d", len(got), MaxKits)
	}
	wantImages := []string{"k1", "k2", "k3", "k4", "k1"}
	for i, k := range got {
		if !strings.Contains(k.Image, wantImages[i]) {
			t.Errorf("kit[%d] = %s, want %s", i, k.Image, wantImages[i])
		}
	}
	if got[4].Alt != "Casa" {
		t.Errorf("kit[4].Alt = %q, want Casa", got[4].Alt)
	}
}

func TestDedupeKits_SkipsEmptyImages(t *testing.T) {
	got := DedupeKits([]Kit{{Type: KitHome, Image: "  "}})
	if len(got) != 0 {
		t.Errorf("DedupeKits() = %v, want empty", got)
	}
}

func TestRecord_JSON(t *testing.T) {
	rec := Record{
		ID:          "22",
		Name:        "Benfica",
		SourceURL:   "https://www.zerozero.pt/equipa/benfica/22",
		Venue:       "Estádio da Luz",
		Coordinates: &Coordinates{Latitude: 38.7527, Longitude: -9.1847},
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	s := string(data)
	for _, want := range []string{`"id":"22"`, `"club":"Benfica"`, `"logo":null`, `"address":null`, `"equipamentos":[]`, `"latitude":38.7527`} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON %s should contain %s", s, want)
		}
	}

	var back Record
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.Venue != rec.Venue || back.Crest != "" || !back.HasCoordinates() {
		t.Errorf("Unmarshal() = %+v, want %+v", back, rec)
	}
}

func TestRecord_UnmarshalPartialCoordinates(t *testing.T) {
	var rec Record
	if err := json.Unmarshal([]byte(`{"id":"1","club":"A","latitude":38.1,"longitude":null}`), &rec); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if rec.HasCoordinates() {
		t.Error("record with only latitude should not have coordinates")
	}
}

func TestRecord_UnmarshalMissingID(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantID  string
		wantErr bool
	}{
		{name: "id from team url", data: `{"club":"Benfica","url":"https://www.zerozero.pt/team.php?id=4"}`, wantID: "4"},
		{name: "hashed url", data: `{"club":"A","url":"https://x"}`, wantID: IDFor("https://x")},
		{name: "stored id kept", data: `{"id":"16","club":"FC Porto","url":"https://www.zerozero.pt/team.php?id=4"}`, wantID: "16"},
		{name: "no id or url", data: `{"club":"A"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec Record
			err := json.Unmarshal([]byte(tt.data), &rec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && rec.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", rec.ID, tt.wantID)
			}
		})
	}
}

func TestRecord_Clone(t *testing.T) {
	rec := &Record{ID: "1", Coordinates: &Coordinates{Latitude: 1}, Kits: []Kit{{Image: "a"}}}
	c := rec.Clone()
	c.Coordinates.Latitude = 2
	c.Kits[0].Image = "b"
	if rec.Coordinates.Latitude != 1 || rec.Kits[0].Image != "a" {
		t.Error("Clone() should not share coordinates or kits")
	}
}
