// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"context"
	"errors"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/lead-engine/pkg/types"
)

// maxProbeHosts caps how many exchangers are tried when earlier ones
// cannot be reached.
const maxProbeHosts = 2

// SMTPProber asks a mail exchanger whether it accepts a recipient by
// running EHLO, MAIL FROM and RCPT TO, then quitting before DATA.
type SMTPProber struct {
	cfg     types.VerifyConfig
	dialer  *net.Dialer
	limiter *rate.Limiter
}

// NewSMTPProber returns a prober configured by cfg. When
// cfg.ProbesPerSecond is positive, probes from all goroutines share one
// rate limit.
func NewSMTPProber(cfg types.VerifyConfig) *SMTPProber {
	cfg = cfg.WithDefaults()
	p := &SMTPProber{
		cfg:    cfg,
		dialer: &net.Dialer{Timeout: cfg.SMTPTimeout},
	}
	if cfg.ProbesPerSecond > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(cfg.ProbesPerSecond), 1)
	}
	return p
}

// ProbeMailbox tries up to two exchangers in order. A permanent (5xx)
// rejection of the recipient is a definitive "no"; connection failures and
// temporary replies move on to the next host, and the last error is
// returned if no host gave an answer.
func (p *SMTPProber) ProbeMailbox(ctx context.Context, email string, mxHosts []string) (bool, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return false, err
		}
	}

	var lastErr error
	for i, host := range mxHosts {
		if i >= maxProbeHosts {
			break
		}
		accepted, err := p.probeHost(ctx, host, email)
		if err == nil {
			return accepted, nil
		}
		zap.L().Debug("verify: smtp probe failed",
			zap.String("host", host), zap.String("email", email), zap.Error(err))
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	if lastErr == nil {
		lastErr = errors.New("no mail exchangers to probe")
	}
	return false, lastErr
}

func (p *SMTPProber) probeHost(ctx context.Context, host, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.SMTPTimeout)
	defer cancel()

	conn, err := p.dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(p.cfg.SMTPPort)))
	if err != nil {
		return false, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return false, err
	}
	defer c.Close()

	if err := c.Hello(p.cfg.HeloName); err != nil {
		return false, err
	}
	if err := c.Mail(p.cfg.MailFrom); err != nil {
		return false, err
	}
	rcptErr := c.Rcpt(email)
	_ = c.Quit()

	if rcptErr == nil {
		return true, nil
	}
	var tpErr *textproto.Error
	if errors.As(rcptErr, &tpErr) && tpErr.Code >= 500 {
		return false, nil
	}
	return false, rcptErr
}
