package math

import "testing"

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslateVec4(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.MulVec4(Vec4{1, 2, 3, 1})

	want := Vec4{11, 22, 33, 1}
	if got != want {
		t.Errorf("MulVec4: got %v, want %v", got, want)
	}

	// Directions (w = 0) are not translated.
	dir := m.MulVec4(Vec4{1, 0, 0, 0})
	if dir != (Vec4{1, 0, 0, 0}) {
		t.Errorf("direction should be unchanged, got %v", dir)
	}
}

func TestMulComposesTranslations(t *testing.T) {
	m := Translate(1, 0, 0).Mul(Translate(0, 2, 0))
	if m[12] != 1 || m[13] != 2 || m[14] != 0 {
		t.Errorf("composed translation: got (%f, %f, %f)", m[12], m[13], m[14])
	}
}
