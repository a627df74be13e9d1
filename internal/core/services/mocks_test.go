package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dgl-microfin/internal/adapters/persistence/models"
	"dgl-microfin/internal/core/domain"
)

// In-memory repository fakes. Each fake assigns IDs sequentially and
// returns gorm.ErrRecordNotFound for missing rows, mirroring the real
// implementations.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	var out []*models.User
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *fakeUserRepo) CountActiveAdmins(_ context.Context) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.IsActiveAdmin() {
			count++
		}
	}
	return count, nil
}

type fakeRefreshTokenRepo struct {
	tokens map[string]*models.RefreshToken
	nextID uint
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*models.RefreshToken), nextID: 1}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	token.ID = r.nextID
	r.nextID++
	r.tokens[token.TokenHash] = token
	return nil
}

func (r *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return token, nil
}

func (r *fakeRefreshTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	if token, ok := r.tokens[tokenHash]; ok && token.RevokedAt == nil {
		now := time.Now()
		token.RevokedAt = &now
	}
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	now := time.Now()
	for _, token := range r.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) error {
	return nil
}

type fakeMemberRepo struct {
	members map[uint]*models.Member
	nextID  uint
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[uint]*models.Member), nextID: 1}
}

func (r *fakeMemberRepo) Create(_ context.Context, member *models.Member) error {
	member.ID = r.nextID
	r.nextID++
	r.members[member.ID] = member
	return nil
}

func (r *fakeMemberRepo) GetByID(_ context.Context, id uint) (*models.Member, error) {
	member, ok := r.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return member, nil
}

func (r *fakeMemberRepo) Update(_ context.Context, member *models.Member) error {
	if _, ok := r.members[member.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.members[member.ID] = member
	return nil
}

func (r *fakeMemberRepo) Delete(_ context.Context, id uint) error {
	delete(r.members, id)
	return nil
}

func (r *fakeMemberRepo) List(_ context.Context, offset, limit int) ([]*models.Member, int64, error) {
	var out []*models.Member
	for _, member := range r.members {
		out = append(out, member)
	}
	return out, int64(len(out)), nil
}

func (r *fakeMemberRepo) Search(_ context.Context, query string, limit int) ([]*models.Member, error) {
	var out []*models.Member
	q := strings.ToLower(query)
	for _, member := range r.members {
		name := strings.ToLower(member.FullName() + " " + member.GroupName)
		if strings.Contains(name, q) {
			out = append(out, member)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.members)), nil
}

func (r *fakeMemberRepo) CountRegisteredSince(_ context.Context, since time.Time) (int64, error) {
	var count int64
	for _, member := range r.members {
		if member.RegisteredAt.After(since) {
			count++
		}
	}
	return count, nil
}

type fakePartnerRepo struct {
	partners map[uint]*models.Partner
	nextID   uint
}

func newFakePartnerRepo() *fakePartnerRepo {
	return &fakePartnerRepo{partners: make(map[uint]*models.Partner), nextID: 1}
}

func (r *fakePartnerRepo) Create(_ context.Context, partner *models.Partner) error {
	partner.ID = r.nextID
	r.nextID++
	r.partners[partner.ID] = partner
	return nil
}

func (r *fakePartnerRepo) GetByID(_ context.Context, id uint) (*models.Partner, error) {
	partner, ok := r.partners[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return partner, nil
}

func (r *fakePartnerRepo) Update(_ context.Context, partner *models.Partner) error {
	if _, ok := r.partners[partner.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.partners[partner.ID] = partner
	return nil
}

func (r *fakePartnerRepo) Delete(_ context.Context, id uint) error {
	delete(r.partners, id)
	return nil
}

func (r *fakePartnerRepo) List(_ context.Context, offset, limit int) ([]*models.Partner, int64, error) {
	var out []*models.Partner
	for _, partner := range r.partners {
		out = append(out, partner)
	}
	return out, int64(len(out)), nil
}

type fakeLoanRepo struct {
	loans  map[uint]*models.Loan
	nextID uint
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{loans: make(map[uint]*models.Loan), nextID: 1}
}

func (r *fakeLoanRepo) Create(_ context.Context, loan *models.Loan) error {
	loan.ID = r.nextID
	r.nextID++
	r.loans[loan.ID] = loan
	return nil
}

func (r *fakeLoanRepo) GetByID(_ context.Context, id uint) (*models.Loan, error) {
	loan, ok := r.loans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return loan, nil
}

func (r *fakeLoanRepo) Update(_ context.Context, loan *models.Loan) error {
	if _, ok := r.loans[loan.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.loans[loan.ID] = loan
	return nil
}

func (r *fakeLoanRepo) List(_ context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	var out []*models.Loan
	for _, loan := range r.loans {
		out = append(out, loan)
	}
	return out, int64(len(out)), nil
}

func (r *fakeLoanRepo) ListByMember(_ context.Context, memberID uint) ([]*models.Loan, error) {
	var out []*models.Loan
	for _, loan := range r.loans {
		if loan.MemberID == memberID {
			out = append(out, loan)
		}
	}
	return out, nil
}

func (r *fakeLoanRepo) ListByStatus(_ context.Context, status domain.LoanStatus) ([]*models.Loan, error) {
	var out []*models.Loan
	for _, loan := range r.loans {
		if loan.Status == string(status) {
			out = append(out, loan)
		}
	}
	return out, nil
}

func (r *fakeLoanRepo) SumOutstanding(_ context.Context, currency domain.Currency) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, loan := range r.loans {
		status := domain.LoanStatus(loan.Status)
		if loan.Currency == string(currency) && (status == domain.LoanActive || status == domain.LoanOverdue) {
			total = total.Add(loan.RemainingBalance)
		}
	}
	return total, nil
}

func (r *fakeLoanRepo) CountOpenByMember(_ context.Context, memberID uint) (int64, error) {
	var count int64
	for _, loan := range r.loans {
		if loan.MemberID == memberID && !domain.LoanStatus(loan.Status).Terminal() {
			count++
		}
	}
	return count, nil
}

func (r *fakeLoanRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.loans)), nil
}

func (r *fakeLoanRepo) CountByStatus(_ context.Context, status domain.LoanStatus) (int64, error) {
	var count int64
	for _, loan := range r.loans {
		if loan.Status == string(status) {
			count++
		}
	}
	return count, nil
}

type fakePaymentRepo struct {
	payments []*models.Payment
	nextID   uint
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{nextID: 1}
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *models.Payment) error {
	payment.ID = r.nextID
	r.nextID++
	r.payments = append(r.payments, payment)
	return nil
}

func (r *fakePaymentRepo) List(_ context.Context, offset, limit int) ([]*models.Payment, int64, error) {
	return r.payments, int64(len(r.payments)), nil
}

func (r *fakePaymentRepo) ListByLoan(_ context.Context, loanID uint) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, payment := range r.payments {
		if payment.LoanID == loanID {
			out = append(out, payment)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	settings *models.Settings
}

func newFakeSettingsRepo(settings *models.Settings) *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: settings}
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*models.Settings, error) {
	if r.settings == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.settings, nil
}

func (r *fakeSettingsRepo) Save(_ context.Context, settings *models.Settings) error {
	r.settings = settings
	return nil
}

type fakeAuditRepo struct {
	entries []*models.AuditLog
}

func newFakeAuditRepo() *fakeAuditRepo {
	return &fakeAuditRepo{}
}

func (r *fakeAuditRepo) Create(_ context.Context, entry *models.AuditLog) error {
	entry.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, offset, limit int) ([]*models.AuditLog, int64, error) {
	return r.entries, int64(len(r.entries)), nil
}

// testSettings returns a settings row with the institution defaults
func testSettings() *models.Settings {
	return &models.Settings{
		ID:                    1,
		InstitutionName:       "ONGD DEBOUT GRANDS LACS",
		CapitalCDF:            decimal.NewFromInt(10000000),
		CapitalUSD:            decimal.NewFromInt(5000),
		InterestRate:          decimal.NewFromInt(10),
		ApplicationFeePercent: decimal.NewFromInt(2),
		InsuranceFeePercent:   decimal.NewFromInt(1),
		SavingsPercent:        decimal.NewFromInt(5),
		PenaltyRate:           decimal.NewFromInt(5),
	}
}
