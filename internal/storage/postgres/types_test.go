package postgres

import "testing"

func TestMapType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"bigint", "BIGINT"},
		{"  BigInt ", "BIGINT"},
		{"integer", "BIGINT"},
		{"double", "DOUBLE PRECISION"},
		{"float", "DOUBLE PRECISION"},
		{"timestamp", "TIMESTAMP"},
		{"text", "TEXT"},
		{"", "TEXT"},
		{"whatever", "TEXT"},
	}
	for _, tc := range tests {
		if got := MapType(tc.in); got != tc.want {
			t.Fatalf("MapType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIdentifier(t *testing.T) {
	t.Parallel()

	if got := identifier("public.yellow_taxi_data"); len(got) != 2 || got[0] != "public" || got[1] != "yellow_taxi_data" {
		t.Fatalf("identifier = %v", got)
	}
	if got := identifier("zones"); len(got) != 1 || got[0] != "zones" {
		t.Fatalf("identifier = %v", got)
	}
}
