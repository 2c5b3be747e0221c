package hash

import "testing"

func TestSHA256Hasher_Sum(t *testing.T) {
	hasher := NewSHA256Hasher()

	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "empty",
			data: "",
			want: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name: "hello world",
			data: "hello world",
			want: "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasher.Sum([]byte(tt.data)); got != tt.want {
				t.Errorf("Sum(%q) = %s, want %s", tt.data, got, tt.want)
			}
		})
	}

	t.Run("different content differs", func(t *testing.T) {
		a := hasher.Sum([]byte("Beat: 7\n"))
		b := hasher.Sum([]byte("Beat: 7.5\n"))
		if a == b {
			t.Error("different content produced the same digest")
		}
	})
}
