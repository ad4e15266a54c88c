package scheduler

import (
	"time"

	invoiceservice "komakresan-backend/internal/apps/invoice/service"
	otpservice "komakresan-backend/internal/apps/otp/service"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// otpSweepEvery is how often stale OTP records are garbage collected
const otpSweepEvery = 15 * time.Minute

// otpRetention keeps expired records around briefly so late validations get a
// proper "inactive" answer instead of a 404
const otpRetention = time.Hour

// Start wires the periodic jobs: monthly invoice generation on the first day
// of each month and the OTP garbage collection sweep. The returned scheduler
// is already running; shut it down on server exit.
func Start(invoices invoiceservice.InvoiceService, otps otpservice.OTPService) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.MonthlyJob(1, gocron.NewDaysOfTheMonth(1), gocron.NewAtTimes(gocron.NewAtTime(0, 30, 0))),
		gocron.NewTask(func() {
			created, err := invoices.GenerateMonthlyInvoices(time.Now().UTC())
			if err != nil {
				log.Error().Err(err).Msg("invoice generation job failed")
				return
			}
			log.Info().Int("invoices", created).Msg("invoice generation job finished")
		}),
		gocron.WithName("monthly-invoice-generation"),
	)
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(otpSweepEvery),
		gocron.NewTask(func() {
			deleted, err := otps.SweepExpired(otpRetention)
			if err != nil {
				log.Error().Err(err).Msg("otp sweep job failed")
				return
			}
			if deleted > 0 {
				log.Info().Int64("deleted", deleted).Msg("otp sweep removed stale records")
			}
		}),
		gocron.WithName("otp-expiry-sweep"),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	return s, nil
}
