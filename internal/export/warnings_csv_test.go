package export

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"

	"kursnet-xml-tool/internal/session"
	"kursnet-xml-tool/internal/validation"
)

const checkCatalog = `<OPENQCAT><NEW_CATALOG>
<SERVICE>
  <PRODUCT_ID>100</PRODUCT_ID>
  <SERVICE_DETAILS>
    <TITLE>Buchhaltung
kompakt</TITLE>
    <DESCRIPTION_LONG>Kurz und Beste Wahl.</DESCRIPTION_LONG>
  </SERVICE_DETAILS>
</SERVICE>
<SERVICE>
  <PRODUCT_ID>200</PRODUCT_ID>
  <SERVICE_DETAILS>
    <DESCRIPTION_LONG>Ein ausführlicher Lehrgang zur modernen Lagerlogistik im Betrieb.</DESCRIPTION_LONG>
    <SERVICE_DATE><START_DATE>2024-01-08</START_DATE></SERVICE_DATE>
  </SERVICE_DETAILS>
</SERVICE>
</NEW_CATALOG></OPENQCAT>`

func TestWarningRows(t *testing.T) {
	s := session.New(zap.NewNop())
	if _, err := s.LoadText(checkCatalog); err != nil {
		t.Fatalf("load: %v", err)
	}

	rows := WarningRows("katalog.xml", s.Warnings())

	wantRules := []string{
		validation.RuleUnbookable,
		validation.RuleDescriptionShort,
		validation.RulePromotional,
	}
	if len(rows) != len(wantRules) {
		t.Fatalf("Expected %d rows, got %d: %+v", len(wantRules), len(rows), rows)
	}
	for i, r := range rows {
		if r.Rule != wantRules[i] {
			t.Errorf("row %d: expected rule %q, got %q", i, wantRules[i], r.Rule)
		}
		if r.File != "katalog.xml" || r.ProductID != "100" || r.Children != 0 {
			t.Errorf("row %d: unexpected row %+v", i, r)
		}
	}
}

func TestWriteWarningsCSV(t *testing.T) {
	rows := []WarningRow{
		{File: "a.xml", ProductID: "100", Title: "Buchhaltung\nkompakt", Children: 2, Rule: "promotional-language", Message: "promotional language not allowed: Beste, Garantie"},
	}

	var buf bytes.Buffer
	if err := WriteWarningsCSV(&buf, rows); err != nil {
		t.Fatalf("WriteWarningsCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\r\n"), "\r\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "FILE,PRODUCT_ID,TITLE,CHILDREN,RULE,MESSAGE" {
		t.Errorf("unexpected header %q", lines[0])
	}
	want := `a.xml,100,Buchhaltung kompakt,2,promotional-language,"promotional language not allowed: Beste, Garantie"`
	if lines[1] != want {
		t.Errorf("unexpected row\n got: %s\nwant: %s", lines[1], want)
	}
}

func TestWriteWarningsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWarningsCSV(&buf, nil); err != nil {
		t.Fatalf("WriteWarningsCSV: %v", err)
	}
	if buf.String() != "FILE,PRODUCT_ID,TITLE,CHILDREN,RULE,MESSAGE\r\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}
