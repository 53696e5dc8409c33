package httpapi

import "testing"

func TestUserPayloadValidation(t *testing.T) {
	cases := []struct {
		name    string
		dto     UserPayloadDTO
		wantErr string
	}{
		{"valid", UserPayloadDTO{Name: "Jane", Email: "jane@x.com"}, ""},
		{"valid with role", UserPayloadDTO{Name: "Jane", Email: "jane@x.com", Role: "admin"}, ""},
		{"blank name", UserPayloadDTO{Name: "   ", Email: "jane@x.com"}, "name and email are required"},
		{"missing email", UserPayloadDTO{Name: "Jane"}, "name and email are required"},
		// format is deliberately not checked
		{"odd email accepted", UserPayloadDTO{Name: "Jane", Email: "not-an-email"}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.dto.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tc.wantErr {
				t.Fatalf("expected %q, got %v", tc.wantErr, err)
			}
		})
	}
}
