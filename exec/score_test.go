package exec

import "testing"

func TestParseScore(t *testing.T) {
	cases := []struct {
		name    string
		out     string
		want    float64
		wantErr bool
	}{
		{name: "single scored line", out: "4.2\n", want: 4.2},
		{name: "setup output then score", out: "setting up\n4.2\n", want: 4.2},
		{name: "no trailing newline", out: "4.2", wantErr: true},
		{name: "non numeric score", out: "not-a-number\n", wantErr: true},
		{name: "empty output", out: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseScore([]byte(tc.out))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got score %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}
