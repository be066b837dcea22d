package parser_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/cubeloom-cli/internal/parser"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadCubeCSV(t *testing.T) {
	content := "Name,CMC,Type,Color,Set,Rarity,Status,Finish,Maybeboard,Image URL,Tags,Price USD,Elo\n" +
		"Lightning Bolt,1,Instant,R,lea,common,Owned,Non-foil,false,,burn;removal,$1.25,1500\n" +
		"Counterspell,2,Instant,U,lea,common,Owned,Non-foil,false,,,0.80,\n" +
		"Maybe Card,3,Creature - Elf,G,m21,rare,Owned,Non-foil,true,,,,\n" +
		"Azorius Signet,2,Artifact,,c21,uncommon,Owned,Non-foil,false,,,\n"
	cards, err := parser.LoadCube(writeFile(t, "cube.csv", content))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards (maybeboard skipped), got %d", len(cards))
	}
	bolt := cards[0]
	if bolt.Name != "Lightning Bolt" || bolt.ManaValue != 1 || bolt.TypeLine != "Instant" {
		t.Fatalf("unexpected card: %+v", bolt)
	}
	if len(bolt.ColorIdentity) != 1 || bolt.ColorIdentity[0] != "R" {
		t.Fatalf("identity: %v", bolt.ColorIdentity)
	}
	if len(bolt.Tags) != 2 || bolt.Tags[1] != "removal" {
		t.Fatalf("tags: %v", bolt.Tags)
	}
	if bolt.Prices.USD == nil || *bolt.Prices.USD != 1.25 {
		t.Fatalf("price: %v", bolt.Prices.USD)
	}
	if bolt.Elo == nil || *bolt.Elo != 1500 {
		t.Fatalf("elo: %v", bolt.Elo)
	}
	if cards[1].Elo != nil {
		t.Fatalf("empty elo should stay unknown")
	}
	if len(cards[2].ColorIdentity) != 0 {
		t.Fatalf("signet should be colorless: %v", cards[2].ColorIdentity)
	}
	for _, c := range cards {
		if c.ID == "" {
			t.Fatalf("card %q has no id", c.Name)
		}
	}
}

func TestLoadCubeSemicolonCSV(t *testing.T) {
	content := "name;cmc;type;color identity;price usd\nBolt;1;Instant;R;1,50\n"
	cards, err := parser.LoadCube(writeFile(t, "cube.csv", content))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cards) != 1 || cards[0].Prices.USD == nil || *cards[0].Prices.USD != 1.5 {
		t.Fatalf("unexpected: %+v", cards)
	}
}

func TestLoadCubeCSVWithByteOrderMark(t *testing.T) {
	cards, err := parser.LoadCube(writeFile(t, "cube.csv", "\ufeffName,CMC\nOpt,1\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cards) != 1 || cards[0].Name != "Opt" || cards[0].ManaValue != 1 {
		t.Fatalf("unexpected: %+v", cards)
	}
}

func TestLoadCubeCSVMissingName(t *testing.T) {
	if _, err := parser.LoadCube(writeFile(t, "cube.csv", "CMC,Type\n1,Instant\n")); err == nil {
		t.Fatalf("expected error for header without Name")
	}
}

func TestLoadCubeJSON(t *testing.T) {
	content := `{"cards":[
		{"cardID":"abc","tags":["burn"],"finish":"Foil","details":{"name":"Lightning Bolt","cmc":1,"type":"Instant","colors":["r"],"color_identity":["R"],"parsed_cost":["r"],"prices":{"usd":"1.10"},"elo":1480.5}},
		{"name":"Grizzly Bears","cmc":"2","type_line":"Creature — Bear","colors":["G"],"power":2,"toughness":"2"},
		{"name":"","cmc":0}
	]}`
	cards, err := parser.LoadCube(writeFile(t, "cube.json", content))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	bolt := cards[0]
	if bolt.ID != "abc" || bolt.Name != "Lightning Bolt" || bolt.ManaCost != "{R}" || bolt.Finish != "Foil" {
		t.Fatalf("unexpected bolt: %+v", bolt)
	}
	if bolt.Colors[0] != "R" || bolt.Prices.USD == nil || *bolt.Prices.USD != 1.10 {
		t.Fatalf("unexpected bolt details: %+v", bolt)
	}
	bears := cards[1]
	if bears.ManaValue != 2 || bears.Power != "2" || bears.Toughness != "2" {
		t.Fatalf("unexpected bears: %+v", bears)
	}
	if len(bears.ColorIdentity) != 1 || bears.ColorIdentity[0] != "G" {
		t.Fatalf("identity should fall back to colors: %v", bears.ColorIdentity)
	}
}

func TestLoadCubeJSONArray(t *testing.T) {
	cards, err := parser.LoadCube(writeFile(t, "cube.json", `[{"name":"Opt","cmc":1}]`))
	if err != nil || len(cards) != 1 || cards[0].Name != "Opt" {
		t.Fatalf("unexpected: %v %v", cards, err)
	}
}

func TestLoadCubeXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Name", "CMC", "Type", "Color"},
		{"Swords to Plowshares", 1, "Instant", "W"},
		{"Golgari Charm", 2, "Instant", "BG"},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	p := filepath.Join(t.TempDir(), "cube.xlsx")
	if err := f.SaveAs(p); err != nil {
		t.Fatalf("save: %v", err)
	}
	cards, err := parser.LoadCube(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cards) != 2 || cards[1].ManaValue != 2 {
		t.Fatalf("unexpected: %+v", cards)
	}
	if got := cards[1].ColorIdentity; len(got) != 2 || got[0] != "B" || got[1] != "G" {
		t.Fatalf("identity: %v", got)
	}
	if _, err := parser.LoadCubeSheet(p, "Missing"); err == nil {
		t.Fatalf("expected error for unknown sheet")
	}
}

func TestLoadCubeTXT(t *testing.T) {
	cards, err := parser.LoadCube(writeFile(t, "cube.txt", "# my cube\nOpt\n\nPonder\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cards) != 2 || cards[1].Name != "Ponder" {
		t.Fatalf("unexpected: %+v", cards)
	}
}

func TestLoadCubeUnsupported(t *testing.T) {
	_, err := parser.LoadCube(writeFile(t, "cube.docx", "x"))
	if !errors.Is(err, parser.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestLoadAnalytics(t *testing.T) {
	p := writeFile(t, "analytics.json", `{"cards":[{"cardName":"Opt","elo":1300,"picks":3,"passes":1,"mainboards":2,"sideboards":2}]}`)
	list, err := parser.LoadAnalytics(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(list) != 1 || list[0].Picks != 3 {
		t.Fatalf("unexpected: %+v", list)
	}
	if r, ok := list[0].PickRate(); !ok || r != 0.75 {
		t.Fatalf("pick rate: %v %v", r, ok)
	}
	arr, err := parser.LoadAnalytics(writeFile(t, "a.json", `[{"cardName":"Opt"}]`))
	if err != nil || len(arr) != 1 {
		t.Fatalf("bare array: %v %v", arr, err)
	}
}

func TestLoadAsfans(t *testing.T) {
	m, err := parser.LoadAsfans(writeFile(t, "asfans.json", `{"abc":0.5,"Opt":1}`))
	if err != nil || m["abc"] != 0.5 || m["Opt"] != 1 {
		t.Fatalf("unexpected: %v %v", m, err)
	}
	if _, err := parser.LoadAsfans(writeFile(t, "bad.json", `{"abc":-1}`)); err == nil {
		t.Fatalf("expected error for negative asfan")
	}
}
