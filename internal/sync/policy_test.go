package sync

import "testing"

func TestPolicy_IsValid(t *testing.T) {
	for _, p := range AllPolicies() {
		if !p.IsValid() {
			t.Errorf("%q should be valid", p)
		}
		if p.Description() == "Unknown policy" {
			t.Errorf("%q has no description", p)
		}
	}
	if Policy("merge").IsValid() {
		t.Error("merge should not be a valid policy")
	}
}

func TestPolicy_Prompts(t *testing.T) {
	tests := map[Policy]bool{
		PolicyInteractive: true,
		PolicyForce:       false,
		PolicySilent:      false,
	}
	for p, want := range tests {
		if got := p.Prompts(); got != want {
			t.Errorf("%q.Prompts() = %v, want %v", p, got, want)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    Policy
		wantErr bool
	}{
		{input: "", want: PolicyInteractive},
		{input: "force", want: PolicyForce},
		{input: " Silent ", want: PolicySilent},
		{input: "INTERACTIVE", want: PolicyInteractive},
		{input: "yolo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePolicy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePolicy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePolicy(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSelectPolicy(t *testing.T) {
	tests := map[string]struct {
		force, silent bool
		fallback      Policy
		want          Policy
	}{
		"default":             {want: PolicyInteractive},
		"force":               {force: true, want: PolicyForce},
		"silent":              {silent: true, want: PolicySilent},
		"silent beats force":  {force: true, silent: true, want: PolicySilent},
		"configured fallback": {fallback: PolicyForce, want: PolicyForce},
		"invalid fallback":    {fallback: "nope", want: PolicyInteractive},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := SelectPolicy(tt.force, tt.silent, tt.fallback); got != tt.want {
				t.Errorf("SelectPolicy() = %q, want %q", got, tt.want)
			}
		})
	}
}
