package validators

import (
	"context"
	"errors"
	"net"
	"testing"
)

type stubResolver struct {
	mx  map[string][]*net.MX
	ips map[string][]net.IPAddr
}

func (s stubResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if v, ok := s.mx[name]; ok {
		return v, nil
	}
	return nil, errors.New("no such host")
}

func (s stubResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	if v, ok := s.ips[host]; ok {
		return v, nil
	}
	return nil, errors.New("no such host")
}

func TestEmailDomainChecker(t *testing.T) {
	checker := NewEmailDomainChecker(stubResolver{
		mx:  map[string][]*net.MX{"mail.example": {{Host: "mx.mail.example", Pref: 10}}},
		ips: map[string][]net.IPAddr{"web.example": {{IP: net.ParseIP("192.0.2.1")}}},
	})

	cases := []struct {
		email string
		want  bool
	}{
		{"ana@mail.example", true},
		{"ana@web.example", true},
		{"ana@nowhere.example", false},
		{"ana@", false},
		{"no-at-sign", false},
	}

	for _, tc := range cases {
		if got := checker.Valid(context.Background(), tc.email); got != tc.want {
			t.Errorf("Valid(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}
