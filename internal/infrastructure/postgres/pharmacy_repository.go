package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/medinventory-api/internal/domain"
	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

var _ repository.PharmacyRepository = (*PharmacyRepo)(nil)

const pharmacyColumns = `id, name, contact_person, contact_number, email, address, registration_number,
	credit_limit, payment_terms, created_at, updated_at`

// PharmacyRepo implementación de PharmacyRepository sobre PostgreSQL.
type PharmacyRepo struct {
	q Querier
}

// NewPharmacyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPharmacyRepository(q Querier) *PharmacyRepo {
	return &PharmacyRepo{q: q}
}

// Create persiste la farmacia. Número de registro repetido -> domain.ErrDuplicate.
func (r *PharmacyRepo) Create(ctx context.Context, p *entity.Pharmacy) error {
	query := `
		INSERT INTO pharmacies (` + pharmacyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.ContactPerson, p.ContactNumber, p.Email, p.Address, p.RegistrationNumber,
		p.CreditLimit, p.PaymentTerms, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pharmacy: %w", err)
	}
	return nil
}

// GetByID obtiene una farmacia por ID.
func (r *PharmacyRepo) GetByID(ctx context.Context, id string) (*entity.Pharmacy, error) {
	return r.get(ctx, `SELECT `+pharmacyColumns+` FROM pharmacies WHERE id = $1`, id)
}

// GetByRegistrationNumber obtiene una farmacia por número de registro.
func (r *PharmacyRepo) GetByRegistrationNumber(ctx context.Context, reg string) (*entity.Pharmacy, error) {
	return r.get(ctx, `SELECT `+pharmacyColumns+` FROM pharmacies WHERE registration_number = $1`, reg)
}

func (r *PharmacyRepo) get(ctx context.Context, query, arg string) (*entity.Pharmacy, error) {
	p, err := scanPharmacy(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pharmacy: %w", err)
	}
	return p, nil
}

// Update actualiza la farmacia.
func (r *PharmacyRepo) Update(ctx context.Context, p *entity.Pharmacy) error {
	query := `
		UPDATE pharmacies SET name = $2, contact_person = $3, contact_number = $4, email = $5, address = $6,
			registration_number = $7, credit_limit = $8, payment_terms = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.ContactPerson, p.ContactNumber, p.Email, p.Address, p.RegistrationNumber,
		p.CreditLimit, p.PaymentTerms, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update pharmacy: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una farmacia. Las facturas conservan su snapshot.
func (r *PharmacyRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM pharmacies WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete pharmacy: %w", err)
	}
	return nil
}

// List lista farmacias por nombre.
func (r *PharmacyRepo) List(ctx context.Context, f repository.PharmacyFilter) ([]*entity.Pharmacy, error) {
	query := `
		SELECT ` + pharmacyColumns + ` FROM pharmacies
		WHERE ($1 = '' OR name ILIKE $2 OR registration_number ILIKE $2 OR contact_person ILIKE $2)
		ORDER BY name
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, f.Search, likePattern(f.Search), limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list pharmacies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pharmacy
	for rows.Next() {
		p, err := scanPharmacy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pharmacy: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPharmacy(row pgx.Row) (*entity.Pharmacy, error) {
	var p entity.Pharmacy
	err := row.Scan(&p.ID, &p.Name, &p.ContactPerson, &p.ContactNumber, &p.Email, &p.Address,
		&p.RegistrationNumber, &p.CreditLimit, &p.PaymentTerms, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
