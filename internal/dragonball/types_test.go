package dragonball

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestPowerLevel_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PowerLevel
		wantErr bool
	}{
		{"string", `"60.000.000"`, "60.000.000", false},
		{"words", `"90 Septillion"`, "90 Septillion", false},
		{"integer", `3000000`, "3000000", false},
		{"float", `1.5`, "1.5", false},
		{"null", `null`, "", false},
		{"object", `{}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got PowerLevel
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCharacterDetail_DecodesNestedRecords(t *testing.T) {
	var d CharacterDetail
	if err := json.Unmarshal([]byte(vegetaDetailJSON), &d); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if d.ID != 2 || d.Name != "Vegeta" {
		t.Errorf("unexpected character: %d %q", d.ID, d.Name)
	}
	if d.OriginPlanet == nil || d.OriginPlanet.Name != "Vegeta" || !d.OriginPlanet.IsDestroyed {
		t.Errorf("unexpected origin planet: %+v", d.OriginPlanet)
	}
	if len(d.Transformations) != 2 || d.Transformations[1].Ki != "24 Billion" {
		t.Errorf("unexpected transformations: %+v", d.Transformations)
	}
	if string(d.Raw()) != vegetaDetailJSON {
		t.Error("Raw() should return the decoded bytes")
	}
}

func TestCharacterDetail_MarshalWithoutRaw(t *testing.T) {
	d := CharacterDetail{Character: Character{ID: 7, Name: "Krillin"}}

	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("output is not an object: %v", err)
	}
	if m["name"] != "Krillin" {
		t.Errorf("name = %v, want Krillin", m["name"])
	}
	if _, ok := m["originPlanet"]; ok {
		t.Error("originPlanet should be omitted when nil")
	}
}

func TestCharacterPage_RawPassthrough(t *testing.T) {
	var p CharacterPage
	if err := json.Unmarshal([]byte(listingPage2JSON), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if string(p.Raw()) != listingPage2JSON {
		t.Errorf("Raw() differs from upstream body")
	}

	// json.Marshal escapes '&' in the link queries; an encoder without HTML
	// escaping must reproduce the body exactly.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got := strings.TrimSuffix(buf.String(), "\n"); got != listingPage2JSON {
		t.Errorf("encoded page differs from upstream body\n got: %s\nwant: %s", got, listingPage2JSON)
	}
	if p.Links.Next == "" {
		t.Error("expected next link to be decoded")
	}
}

func TestCharacterDetail_RawKeepsBigNumbers(t *testing.T) {
	const body = `{"id":77,"name":"Zeno","ki":123456789012345678901,"maxKi":"A & B <x>"}`

	var d CharacterDetail
	if err := json.Unmarshal([]byte(body), &d); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if string(d.Raw()) != body {
		t.Errorf("Raw() = %s, want %s", d.Raw(), body)
	}
	if d.Ki != "123456789012345678901" {
		t.Errorf("Ki = %q, want the exact digits", d.Ki)
	}
}

func TestCharacterPage_RequestedPageFallback(t *testing.T) {
	p := CharacterPage{Meta: PageMeta{CurrentPage: 4}}
	if p.RequestedPage() != 4 {
		t.Errorf("RequestedPage = %d, want 4", p.RequestedPage())
	}

	p.requestedPage = 3
	if p.RequestedPage() != 3 {
		t.Errorf("RequestedPage = %d, want 3", p.RequestedPage())
	}
}
