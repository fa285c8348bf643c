// Package httpclient builds the client used for every outbound call: the provider API and the alert sinks.
package httpclient

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/dnscache"
	"golang.org/x/net/proxy"
)

const refreshInterval = 5 * time.Minute

var resolver = &dnscache.Resolver{}

func init() {
	go func() {
		t := time.NewTicker(refreshInterval)
		defer t.Stop()
		for range t.C {
			resolver.Refresh(true)
		}
	}()
}

// New returns a client bounded by timeout. Connections go through proxyURL when it is given,
// otherwise hostnames are resolved with a cached resolver.
func New(timeout time.Duration, proxyURL string) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("parse proxy: %w", err)
		}
		d, err := proxy.FromURL(u, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("proxy %v: %w", u.Redacted(), err)
		}
		transport.DialContext = contextDialer(d)
	} else {
		transport.DialContext = cachedDial(&net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second})
	}
	return &http.Client{Transport: transport, Timeout: timeout}, nil
}

func contextDialer(d proxy.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd.DialContext
	}
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return d.Dial(network, addr)
	}
}

func cachedDial(dialer *net.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (conn net.Conn, err error) {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err
		}
		ips, err := resolver.LookupHost(ctx, host)
		if err != nil {
			return nil, err
		}
		if len(ips) == 0 {
			return nil, fmt.Errorf("no address for %v", host)
		}
		for _, ip := range ips {
			conn, err = dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
			if err == nil {
				return conn, nil
			}
		}
		return nil, err
	}
}
