package service

import "testing"

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain.pdf", "plain.pdf"},
		{`a*b'c"d,e&f#g^h@i:j;k+l.zip`, "a_b_c_d_e_f_g_h_i_j_k_l.zip"},
		{"Report #1: Q&A.zip", "Report _1_ Q_A.zip"},
		{"spaces are kept.pdf", "spaces are kept.pdf"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Fatalf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
