package matcher

import "testing"

func TestNamesMatch(t *testing.T) {
	testCases := []struct {
		name      string
		candidate string
		official  string
		aliases   []string
		expected  bool
	}{
		{
			name:      "PrefixStrippedEquality",
			candidate: "Quận Hà Đông",
			official:  "Hà Đông",
			expected:  true,
		},
		{
			name:      "DiacriticInsensitiveExact",
			candidate: "ha dong",
			official:  "Hà Đông",
			expected:  true,
		},
		{
			name:      "PrefixOnOfficialSide",
			candidate: "Ba Đình",
			official:  "Quận Ba Đình",
			expected:  true,
		},
		{
			name:      "PrefixBothSides",
			candidate: "P. Điện Biên",
			official:  "Phường Điện Biên",
			expected:  true,
		},
		{
			name:      "NumericWard",
			candidate: "Phuong 1",
			official:  "Phường 1",
			expected:  true,
		},
		{
			name:      "AliasMatch",
			candidate: "Sài Gòn",
			official:  "Hồ Chí Minh",
			aliases:   []string{"TP Hồ Chí Minh", "Sai Gon", "HCM"},
			expected:  true,
		},
		{
			name:      "NoMatch",
			candidate: "Hải Phòng",
			official:  "Cần Thơ",
			expected:  false,
		},
		{
			name:      "EmptyCandidate",
			candidate: "",
			official:  "Hà Đông",
			expected:  false,
		},
		{
			name:      "RetypedWithExtraSpaces",
			candidate: "  quan   ha dong ",
			official:  "Hà Đông",
			expected:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NamesMatch(tc.candidate, tc.official, tc.aliases)
			if got != tc.expected {
				t.Errorf("NamesMatch(%q, %q, %v) = %v, want %v",
					tc.candidate, tc.official, tc.aliases, got, tc.expected)
			}
		})
	}
}

// TestNamesMatch_ShortNameContainment tên ngắn chứa trong tên dài hơn vẫn
// match theo rule containment hiện tại. Hành vi này có thể gây false
// positive nhưng là trade-off được giữ nguyên — test pin lại đúng như vậy.
func TestNamesMatch_ShortNameContainment(t *testing.T) {
	if !NamesMatch("Đông", "Hà Đông", nil) {
		t.Error(`NamesMatch("Đông", "Hà Đông") phải true theo rule containment`)
	}
}

func TestScore(t *testing.T) {
	// Tên đúng phải điểm cao hơn tên không liên quan
	good := Score("ha dong", "Hà Đông", nil)
	bad := Score("ha dong", "Cần Thơ", nil)
	if good <= bad {
		t.Errorf("Score đúng (%f) phải lớn hơn Score sai (%f)", good, bad)
	}
	if good < 0.9 {
		t.Errorf("Score exact-after-normalize quá thấp: %f", good)
	}

	// Alias phải được tính vào điểm
	withAlias := Score("sai gon", "Hồ Chí Minh", []string{"Sài Gòn"})
	if withAlias < 0.9 {
		t.Errorf("Score qua alias quá thấp: %f", withAlias)
	}

	if s := Score("", "Hà Đông", nil); s != 0 {
		t.Errorf("Score với candidate rỗng phải là 0, got %f", s)
	}
}
