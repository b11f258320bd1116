package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rentalconnect/internal/domain"
	"rentalconnect/internal/modules/auth"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seedPassword is shared by every generated account.
const seedPassword = "password123"

type seedOptions struct {
	landlords  int
	renters    int
	properties int
	seed       int64
}

type seedResult struct {
	Landlords  int
	Renters    int
	Properties int
	Bookings   int
	Payments   int
	Messages   int
}

func newSeedCmd() *cobra.Command {
	opts := seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with demo users, listings, bookings and payments",
		Long:  "Generate demo data with gofakeit. Every account uses the password " + seedPassword + ".",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer closeDB(db)

			res, err := seed(cmd.Context(), db, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Seeded %d landlords, %d renters, %d properties, %d bookings, %d payments, %d messages.\n",
				res.Landlords, res.Renters, res.Properties, res.Bookings, res.Payments, res.Messages)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.landlords, "landlords", 3, "number of landlords")
	cmd.Flags().IntVar(&opts.renters, "renters", 5, "number of renters")
	cmd.Flags().IntVar(&opts.properties, "properties", 4, "properties per landlord")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed (0 = random)")
	return cmd
}

func seed(ctx context.Context, db *gorm.DB, opts seedOptions) (*seedResult, error) {
	faker := gofakeit.New(opts.seed)
	res := &seedResult{}

	hash, err := auth.NewService(nil, bcrypt.MinCost).HashPassword(seedPassword)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	newUser := func(role domain.UserRole) domain.User {
		return domain.User{
			Name:         faker.Name(),
			Email:        strings.ToLower(fmt.Sprintf("%s.%s@%s", faker.FirstName(), faker.LetterN(6), "example.com")),
			PasswordHash: hash,
			Role:         role,
		}
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		landlords := make([]domain.User, 0, opts.landlords)
		for i := 0; i < opts.landlords; i++ {
			landlords = append(landlords, newUser(domain.RoleLandlord))
		}
		renters := make([]domain.User, 0, opts.renters)
		for i := 0; i < opts.renters; i++ {
			renters = append(renters, newUser(domain.RoleRenter))
		}
		if len(landlords) > 0 {
			if err := tx.Create(&landlords).Error; err != nil {
				return fmt.Errorf("creating landlords: %w", err)
			}
		}
		if len(renters) > 0 {
			if err := tx.Create(&renters).Error; err != nil {
				return fmt.Errorf("creating renters: %w", err)
			}
		}
		res.Landlords, res.Renters = len(landlords), len(renters)

		now := time.Now().UTC()
		var props []domain.Property
		for _, l := range landlords {
			for i := 0; i < opts.properties; i++ {
				props = append(props, domain.Property{
					LandlordID:    l.ID,
					Title:         fmt.Sprintf("%s %d-bed %s", faker.Adjective(), faker.Number(1, 4), faker.RandomString([]string{"flat", "house", "studio", "loft"})),
					Description:   faker.Paragraph(1, 3, 12, " "),
					Address:       fmt.Sprintf("%s, %s", faker.Street(), faker.City()),
					Rent:          float64(faker.Number(6, 40) * 100),
					Bedrooms:      faker.Number(0, 4),
					Bathrooms:     faker.Number(1, 2),
					AvailableFrom: now.AddDate(0, 0, faker.Number(0, 60)),
					Status:        domain.PropertyAvailable,
				})
			}
		}
		if len(props) > 0 {
			if err := tx.Create(&props).Error; err != nil {
				return fmt.Errorf("creating properties: %w", err)
			}
		}
		res.Properties = len(props)

		if len(renters) == 0 || len(props) == 0 {
			return nil
		}

		// Each renter requests one property; every other request gets confirmed and paid.
		for i, r := range renters {
			p := props[i%len(props)]
			b := domain.Booking{PropertyID: p.ID, RenterID: r.ID, LandlordID: p.LandlordID, Status: domain.BookingPending}
			if i%2 == 0 {
				b.Status = domain.BookingConfirmed
			}
			if err := tx.Create(&b).Error; err != nil {
				return fmt.Errorf("creating booking: %w", err)
			}
			res.Bookings++

			msg := domain.Message{SenderID: r.ID, ReceiverID: p.LandlordID, Text: faker.Question()}
			if err := tx.Create(&msg).Error; err != nil {
				return fmt.Errorf("creating message: %w", err)
			}
			res.Messages++

			if b.Status != domain.BookingConfirmed {
				continue
			}
			for m := 2; m >= 0; m-- {
				start := time.Date(now.Year(), now.Month()-time.Month(m), 1, 0, 0, 0, 0, time.UTC)
				paidAt := start.AddDate(0, 0, faker.Number(0, 5))
				pay := domain.Payment{
					PropertyID:        p.ID,
					RenterID:          r.ID,
					LandlordID:        p.LandlordID,
					Period:            start.Format(domain.PeriodLayout),
					Amount:            p.Rent,
					DueDate:           start,
					Paid:              true,
					PaidAt:            &paidAt,
					LandlordConfirmed: m > 0,
				}
				if pay.LandlordConfirmed {
					pay.ConfirmedAt = &paidAt
				}
				if err := tx.Create(&pay).Error; err != nil {
					return fmt.Errorf("creating payment: %w", err)
				}
				res.Payments++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
