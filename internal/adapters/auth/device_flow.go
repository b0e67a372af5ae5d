package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

var ErrDeviceFlowTimeout = errors.New("timed out waiting for device authorization")

type DeviceCode struct {
	VerificationURL string
	UserCode        string
	Expiry          time.Time

	response *oauth2.DeviceAuthResponse
}

// StartDevice requests a device code the user confirms in a browser.
func (p Provider) StartDevice(ctx context.Context) (DeviceCode, error) {
	if err := p.validate(); err != nil {
		return DeviceCode{}, err
	}

	requestCtx, cancel := p.requestContext(ctx)
	defer cancel()

	resp, err := p.Config("").DeviceAuth(p.context(requestCtx), p.authOptions()...)
	if err != nil {
		return DeviceCode{}, fmt.Errorf("request device code: %w", err)
	}

	verificationURL := resp.VerificationURI
	if resp.VerificationURIComplete != "" {
		verificationURL = resp.VerificationURIComplete
	}
	if resp.DeviceCode == "" || resp.UserCode == "" || verificationURL == "" {
		return DeviceCode{}, errors.New("device code response missing required fields")
	}

	return DeviceCode{
		VerificationURL: verificationURL,
		UserCode:        resp.UserCode,
		Expiry:          resp.Expiry,
		response:        resp,
	}, nil
}

// WaitDevice polls the token endpoint until the user approves, the code
// expires or timeout elapses.
func (p Provider) WaitDevice(ctx context.Context, code DeviceCode, timeout time.Duration) (Grant, error) {
	if code.response == nil {
		return Grant{}, errors.New("device code was not issued by StartDevice")
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	token, err := p.Config("").DeviceAccessToken(p.context(waitCtx), code.response, p.authOptions()...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return Grant{}, ErrDeviceFlowTimeout
		}
		return Grant{}, fmt.Errorf("wait for device authorization: %w", err)
	}

	return newGrant(token)
}

func (p Provider) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := p.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}
