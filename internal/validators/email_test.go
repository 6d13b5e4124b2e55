package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeResolver struct {
	mx  map[string]bool
	ips map[string]bool
}

func (f fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if f.mx[name] {
		return []*net.MX{{Host: "mx." + name, Pref: 10}}, nil
	}
	return nil, errors.New("no such host")
}

func (f fakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	if f.ips[host] {
		return []net.IPAddr{{IP: net.ParseIP("192.0.2.1")}}, nil
	}
	return nil, errors.New("no such host")
}

func TestEmailDomainValid(t *testing.T) {
	v := NewEmailDomain(fakeResolver{
		mx:  map[string]bool{"garage.nl": true},
		ips: map[string]bool{"a-only.nl": true},
	})
	ctx := context.Background()

	assert.True(t, v.Valid(ctx, "jan@garage.nl"))
	assert.True(t, v.Valid(ctx, "jan@a-only.nl"))
	assert.False(t, v.Valid(ctx, "jan@nergens.invalid"))
	assert.False(t, v.Valid(ctx, "jan@"))
	assert.False(t, v.Valid(ctx, "jan"))
}
