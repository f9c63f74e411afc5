package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"skincare/internal/bookings/confirmation"
	"skincare/internal/bookings/form"
	"skincare/internal/bookings/validator"
	"skincare/internal/bookings/wizard"
	"skincare/internal/doctors/repository"
	doctorservice "skincare/internal/doctors/service"
	"skincare/internal/integration/provider"
	integration "skincare/internal/integration/service"
	"skincare/pkg/config"
	"skincare/pkg/logger"
	"skincare/pkg/model"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "bookingctl",
		Usage:  "book a skincare clinic appointment from the terminal",
		Writer: out,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "log to stderr"},
		},
		Commands: []*cli.Command{
			{
				Name:   "doctors",
				Usage:  "list the clinic's doctors and their slots",
				Action: listDoctors,
			},
			{
				Name:   "services",
				Usage:  "list bookable services",
				Action: listServices,
			},
			{
				Name:  "book",
				Usage: "book one appointment",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "doctor", Usage: "doctor id", Required: true},
					&cli.StringFlag{Name: "name", Usage: "patient full name", Required: true},
					&cli.StringFlag{Name: "email", Usage: "patient email", Required: true},
					&cli.StringFlag{Name: "phone", Usage: "patient phone", Required: true},
					&cli.StringFlag{Name: "date", Usage: "appointment date (YYYY-MM-DD)", Required: true},
					&cli.StringFlag{Name: "time", Usage: "appointment time (HH:MM)", Required: true},
					&cli.StringFlag{Name: "service", Usage: "service label", Value: model.DefaultService},
					&cli.StringFlag{Name: "notes", Usage: "notes for the doctor"},
					&cli.BoolFlag{Name: "video", Usage: "add a video consultation"},
					&cli.BoolFlag{Name: "direct", Usage: "skip calendar integration"},
					&cli.StringFlag{Name: "server", Usage: "book through a running booking service at this base URL", EnvVars: []string{"BOOKING_SERVER"}},
					&cli.DurationFlag{Name: "wait", Usage: "how long to wait for --server to report healthy", Value: 5 * time.Second},
				},
				Action: book,
			},
		},
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	if c.Bool("verbose") {
		cfg.Log = logger.New(logger.Config{
			Level:   cfg.LogLevel,
			Format:  logger.TEXT,
			Output:  c.App.ErrWriter,
			Service: "bookingctl",
		})
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func doctorService(cfg *config.Config) (doctorservice.DoctorService, error) {
	repo, err := repository.NewInMemoryDoctorRepository(repository.DefaultDoctors())
	if err != nil {
		return nil, err
	}
	return doctorservice.NewDoctorService(repo, cfg.Log), nil
}

func listDoctors(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	doctors, err := doctorService(cfg)
	if err != nil {
		return err
	}

	all, err := doctors.GetAll(c.Context)
	if err != nil {
		return err
	}
	for _, d := range all {
		fmt.Fprintf(c.App.Writer, "%s  %-22s %-16s %s\n", d.ID, d.Name, d.Specialty, strings.Join(d.AvailableSlots, " "))
	}
	return nil
}

func listServices(c *cli.Context) error {
	for _, s := range model.Services() {
		fmt.Fprintln(c.App.Writer, s)
	}
	return nil
}

func appointmentRequest(c *cli.Context) model.AppointmentRequest {
	return model.AppointmentRequest{
		PatientName:  c.String("name"),
		PatientEmail: c.String("email"),
		PatientPhone: c.String("phone"),
		Date:         c.String("date"),
		Time:         c.String("time"),
		Service:      c.String("service"),
		Notes:        c.String("notes"),
		VideoCall:    c.Bool("video"),
	}
}

func book(c *cli.Context) error {
	if server := c.String("server"); server != "" {
		return bookRemote(c, server)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	doctors, err := doctorService(cfg)
	if err != nil {
		return err
	}

	doctor, err := doctors.GetByID(c.Context, c.String("doctor"))
	if err != nil {
		return fmt.Errorf("unknown doctor %q: %w", c.String("doctor"), err)
	}

	opts := form.Options{
		Validator:       validator.NewAppointmentValidator(cfg.Location(), cfg.Log),
		ErrorResetDelay: cfg.ErrorResetDelay,
		Log:             cfg.Log,
	}
	if !c.Bool("direct") {
		calendar := provider.NewSimulatedProvider(provider.SimulatedConfigFrom(cfg), cfg.Log)
		opts.Integration = &printingIntegration{
			inner: integration.NewIntegrationService(calendar, nil, cfg.Log),
			out:   c.App.Writer,
		}
	}

	w := wizard.New(opts)
	defer w.Close()

	if err := w.SelectDoctor(doctor); err != nil {
		return err
	}

	state, booking, err := w.Submit(context.WithoutCancel(c.Context), appointmentRequest(c))
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, v := range verrs {
			fmt.Fprintf(c.App.Writer, "  %s: %s\n", v.Field, v.Message)
		}
		return errors.New("appointment was not booked")
	}
	if err != nil {
		return err
	}
	if state.Status == form.StatusError {
		return errors.New(state.Error)
	}
	if booking == nil {
		return errors.New("appointment was not booked")
	}

	fmt.Fprintln(c.App.Writer)
	return confirmation.RenderText(c.App.Writer, confirmation.Build(booking.Appointment, booking.Doctor))
}

// printingIntegration echoes each step label as the booking progresses.
type printingIntegration struct {
	inner integration.IntegrationService
	out   io.Writer
}

func (p *printingIntegration) Book(ctx context.Context, doctor *model.Doctor, req model.AppointmentRequest, progress integration.ProgressFunc) (*integration.Result, error) {
	return p.inner.Book(ctx, doctor, req, func(step, label string) {
		fmt.Fprintln(p.out, label)
		if progress != nil {
			progress(step, label)
		}
	})
}
