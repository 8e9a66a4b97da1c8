package project

import (
	"reflect"
	"testing"
)

func TestFixtures(t *testing.T) {
	projects := Fixtures()
	if len(projects) != 1 {
		t.Fatalf("must be 1 project, but got %v", len(projects))
	}
	p := projects[0]
	if p.Name != "IMDB_exploratory" || p.Author != "Anton Vasin" {
		t.Fatalf("unexpected project %+v", p)
	}
	if !reflect.DeepEqual([]Model{{Type: ModelTypeLinearRegression}}, p.Models) {
		t.Fatalf("unexpected models %v", p.Models)
	}
}

func TestFixturesAreFresh(t *testing.T) {
	first := Fixtures()
	first[0].Name = "changed"
	first[0].Models = append(first[0].Models, Model{Type: "RandomForest"})

	if !reflect.DeepEqual(Fixtures(), Fixtures()) {
		t.Fatal("fixtures must be identical between calls")
	}
	if Fixtures()[0].Name != "IMDB_exploratory" {
		t.Fatal("fixtures must not share state between calls")
	}
}
