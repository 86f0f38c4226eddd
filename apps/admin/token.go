package main

import (
	"fmt"
	"time"

	echoapi "github.com/Speakceo/speakceo-education-platform-sub002/apps/api/echo"
)

// token prints a signed API token for learnerID.
func (cli *commandLine) token(learnerID string, ttl time.Duration) error {
	if ttl <= 0 {
		return errBadTTL
	}
	ss, err := echoapi.GenerateToken(cli.secretKey, echoapi.NewLearnerClaims(learnerID, ttl))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cli.out, ss)
	return nil
}
