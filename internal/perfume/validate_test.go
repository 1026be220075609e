package perfume

import (
	"strings"
	"testing"
)

func validPerfume() Perfume {
	return Perfume{
		ID:            "p1",
		Name:          "Test",
		Brand:         "Brand",
		Gender:        GenderUnisex,
		Concentration: ConcentrationEDT,
		ScentFamily:   "Fresh",
		TopNotes:      []string{"Lemon"},
		Longevity:     3,
		Sillage:       3,
		Intensity:     3,
		Price:         0,
		Season:        []Season{SeasonSummer},
		Occasion:      OccasionDay,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Perfume)
		wantErr string
	}{
		{name: "valid perfume", modify: func(p *Perfume) {}},
		{name: "custom scent family allowed", modify: func(p *Perfume) { p.ScentFamily = "Aquatic" }},
		{name: "missing name", modify: func(p *Perfume) { p.Name = "" }, wantErr: "name is required"},
		{name: "bad gender", modify: func(p *Perfume) { p.Gender = "Other" }, wantErr: "gender must be one of"},
		{name: "bad concentration", modify: func(p *Perfume) { p.Concentration = "Mist" }, wantErr: "concentration must be one of"},
		{name: "longevity too high", modify: func(p *Perfume) { p.Longevity = 6 }, wantErr: "longevity must be between 1 and 5"},
		{name: "sillage too low", modify: func(p *Perfume) { p.Sillage = 0 }, wantErr: "sillage must be between 1 and 5"},
		{name: "negative price", modify: func(p *Perfume) { p.Price = -1 }, wantErr: "price must be at least 0"},
		{name: "bad season", modify: func(p *Perfume) { p.Season = []Season{"Monsoon"} }, wantErr: "season[0]"},
		{name: "bad occasion", modify: func(p *Perfume) { p.Occasion = "Gym" }, wantErr: "occasion must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPerfume()
			tt.modify(&p)

			err := Validate(&p)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	p := validPerfume()
	p.Name = ""
	p.Brand = ""

	err := Validate(&p)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "name is required") || !strings.Contains(err.Error(), "brand is required") {
		t.Errorf("expected both fields reported, got %q", err)
	}
}

func TestCleanList(t *testing.T) {
	got := CleanList([]string{" Rose ", "", "  ", "Oud"})
	if len(got) != 2 || got[0] != "Rose" || got[1] != "Oud" {
		t.Errorf("CleanList = %v, want [Rose Oud]", got)
	}
}

func TestNotes(t *testing.T) {
	p := Perfume{TopNotes: []string{"a"}, MiddleNotes: []string{"b"}, BaseNotes: []string{"c", "d"}}
	got := p.Notes()
	if strings.Join(got, ",") != "a,b,c,d" {
		t.Errorf("Notes = %v", got)
	}

	got[0] = "changed"
	if p.TopNotes[0] != "a" {
		t.Error("Notes aliases TopNotes")
	}
}
