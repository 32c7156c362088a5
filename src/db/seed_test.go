package db

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.tsv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestReadCSVSkipsMalformedRows(t *testing.T) {
	path := writeSeedFile(t,
		"id\tname\taddress\tcity\tphone\tlon\tlat\tfeatures\tisPremium\n"+
			"1\tBubbles\t12 Kirkgate\tLeeds\t0113 245 0000\t-1.5421\t53.7997\tService wash|Wi-Fi\ttrue\n"+
			"2\tBroken row\tmissing the rest\n"+
			"3\tSoap Star\t88 Briggate\tLeeds\t0113 245 1111\t-1.5433\t53.7981\t\tfalse\n")

	store := &ElasticStore{}
	listings, err := store.readCSV(path)
	if err != nil {
		t.Fatalf("readCSV: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("got %d listings, want 2 (malformed row skipped, valid rows kept)", len(listings))
	}

	byID := make(map[string]int)
	for i, l := range listings {
		byID[l.ID] = i
	}
	if _, ok := byID["2"]; ok {
		t.Error("truncated row was loaded")
	}

	i, ok := byID["1"]
	if !ok {
		t.Fatal("row before the malformed one was dropped")
	}
	if !listings[i].IsPremium || len(listings[i].Features) != 2 {
		t.Errorf("row 1 fields mangled: %+v", listings[i])
	}
	if listings[i].Location.Lat != 53.7997 || listings[i].Location.Lon != -1.5421 {
		t.Errorf("row 1 coordinates mangled: %+v", listings[i].Location)
	}

	j, ok := byID["3"]
	if !ok {
		t.Fatal("row after the malformed one was dropped")
	}
	if listings[j].Features == nil || len(listings[j].Features) != 0 {
		t.Errorf("empty features column must load as an empty list, got %#v", listings[j].Features)
	}
}
