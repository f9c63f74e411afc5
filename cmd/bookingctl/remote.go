package main

import (
	"errors"
	"fmt"
	"sort"

	"skincare/internal/bookings/confirmation"
	"skincare/pkg/client"

	"github.com/urfave/cli/v2"
)

type remoteSession struct {
	ID string `json:"id"`
}

// bookRemote runs the same wizard steps against a booking service.
func bookRemote(c *cli.Context, server string) error {
	sessions := client.NewSessionClient(server)
	ctx := c.Context

	fmt.Fprintf(c.App.Writer, "Booking through %s...\n", server)

	if err := sessions.WaitForHealthy(ctx, c.Duration("wait")); err != nil {
		return err
	}

	resp, err := sessions.Create(ctx)
	if err != nil {
		return err
	}
	if err := client.CheckStatus(resp); err != nil {
		return err
	}
	var session remoteSession
	if err := resp.DecodeData(&session); err != nil {
		return err
	}
	defer func() { _, _ = sessions.Delete(ctx, session.ID) }()

	if resp, err = sessions.SelectDoctor(ctx, session.ID, c.String("doctor")); err != nil {
		return err
	}
	if err := client.CheckStatus(resp); err != nil {
		return err
	}

	if resp, err = sessions.SubmitAppointment(ctx, session.ID, appointmentRequest(c)); err != nil {
		return err
	}
	if err := client.CheckStatus(resp); err != nil {
		printDetails(c, err)
		return err
	}

	if resp, err = sessions.Confirmation(ctx, session.ID); err != nil {
		return err
	}
	if err := client.CheckStatus(resp); err != nil {
		return err
	}
	var view confirmation.View
	if err := resp.DecodeData(&view); err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer)
	return confirmation.RenderText(c.App.Writer, view)
}

func printDetails(c *cli.Context, err error) {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return
	}
	fields := make([]string, 0, len(apiErr.Details))
	for field := range apiErr.Details {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(c.App.Writer, "  %s: %v\n", field, apiErr.Details[field])
	}
}
