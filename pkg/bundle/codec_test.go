package bundle

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"
)

func TestEncodeEmptyConfig(t *testing.T) {
	tests := []struct {
		name string
		in   ConfigFile
	}{
		{"nil components", ConfigFile{}},
		{"empty components", NewConfig()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.in)
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			want := "{\n  \"components\": []\n}\n"
			if string(got) != want {
				t.Errorf("Encode() = %q, want %q", got, want)
			}
		})
	}
}

func TestEncodePositions(t *testing.T) {
	got, err := Encode(PositionFile{"n1": {X: 1, Y: 2}})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	want := "{\n  \"n1\": {\n    \"x\": 1,\n    \"y\": 2\n  }\n}\n"
	if string(got) != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestEncodeUnsupported(t *testing.T) {
	if _, err := Encode(map[string]any{"f": func() {}}); err == nil {
		t.Error("Encode() should fail for functions")
	}
}

func TestDecodeConfig(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ConfigFile
		wantErr bool
	}{
		{
			name:  "components",
			input: `{"components":[{"type":"text","id":"c1"}]}`,
			want:  ConfigFile{Components: []Component{Component(`{"type":"text","id":"c1"}`)}},
		},
		{
			name:  "missing components",
			input: `{}`,
			want:  NewConfig(),
		},
		{
			name:  "null components",
			input: `{"components":null}`,
			want:  NewConfig(),
		},
		{name: "not json", input: `<html>`, wantErr: true},
		{name: "truncated", input: `{"components":[`, wantErr: true},
		{name: "array root", input: `[1,2]`, wantErr: true},
		{
			name:  "opaque components",
			input: `{"components":["text-field", 12345678901234567890, null, {"z": 1, "a": [1, 2]}]}`,
			want: ConfigFile{Components: []Component{
				Component(`"text-field"`),
				Component(`12345678901234567890`),
				Component(`null`),
				Component(`{"z":1,"a":[1,2]}`),
			}},
		},
		{name: "components not an array", input: `{"components":"text-field"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeConfig([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DecodeConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodePositions(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PositionFile
		wantErr bool
	}{
		{
			name:  "two nodes",
			input: `{"n1":{"x":1,"y":2},"n2":{"x":-3.5,"y":0}}`,
			want:  PositionFile{"n1": {X: 1, Y: 2}, "n2": {X: -3.5, Y: 0}},
		},
		{name: "empty", input: `{}`, want: PositionFile{}},
		{name: "null", input: `null`, want: PositionFile{}},
		{name: "string coordinate", input: `{"n1":{"x":"1","y":2}}`, wantErr: true},
		{name: "not json", input: `nope`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePositions([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodePositions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DecodePositions() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	b := Empty()
	if b.Edit.Components == nil || b.View.Components == nil || b.Positions == nil {
		t.Fatalf("Empty() members must be non-nil: %+v", b)
	}
	if b.Edit.Len() != 0 || b.View.Len() != 0 || len(b.Positions) != 0 {
		t.Errorf("Empty() members must be empty: %+v", b)
	}
	if b.Member(Positions) == nil || b.Member(Member(7)) != nil {
		t.Error("Member() returned unexpected value")
	}
}

func TestDecodeBundle(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Bundle
		wantErr bool
	}{
		{
			name: "all members",
			in:   `{"edit":{"components":[{"id":"A"}]},"view":{"components":[]},"positions":{"A":{"x":1,"y":2}}}`,
			want: Bundle{
				Edit:      ConfigFile{Components: []Component{Component(`{"id":"A"}`)}},
				View:      NewConfig(),
				Positions: PositionFile{"A": {X: 1, Y: 2}},
			},
		},
		{name: "empty object", in: `{}`, want: Empty()},
		{name: "null members", in: `{"edit":null,"positions":null}`, want: Empty()},
		{name: "bad edit", in: `{"edit":{"components":{}}}`, wantErr: true},
		{name: "not an object", in: `[]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeBundle([]byte(tt.in))
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeBundle() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DecodeBundle() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeLeavesHTMLUnescaped(t *testing.T) {
	b := Empty()
	b.Edit.Components = []Component{Component(`{"label":"<b>&</b>","id":"n&1"}`)}
	b.Positions["n&1"] = Position{X: 1, Y: 2}

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	for _, m := range Members {
		data, err := Encode(b.Member(m))
		if err != nil {
			t.Fatalf("Encode(%s) error: %v", m, err)
		}
		g.Assert(t, "html_"+m.String()+".json", data)
	}

	data, err := Encode(b)
	if err != nil {
		t.Fatalf("Encode(bundle) error: %v", err)
	}
	g.Assert(t, "html_bundle.json", data)
}

func TestConfigRoundTripKeepsComponents(t *testing.T) {
	in := "{\n  \"components\": [\n    {\n      \"z\": 1,\n      \"a\": 9007199254740993\n    },\n    \"text-field\"\n  ]\n}\n"
	c, err := DecodeConfig([]byte(in))
	if err != nil {
		t.Fatalf("DecodeConfig() error: %v", err)
	}
	out, err := Encode(c)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if string(out) != in {
		t.Errorf("round trip changed the document:\ngot:\n%s\nwant:\n%s", out, in)
	}
}
