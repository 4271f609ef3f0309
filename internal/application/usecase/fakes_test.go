package usecase_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bidm-api/internal/domain/entity"
	"github.com/jhoicas/bidm-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria de los puertos de persistencia. Emulan las reglas que la
// DB garantiza con claves y FKs: update de estado condicionado al origen,
// esqueletos idempotentes y el cascade de response_audiences cuando una
// audiencia desaparece del agregado.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	bids      map[string]*entity.Bid
	responses []*entity.PartnerResponse
	grants    map[string]bool // "bidID|userID"

	nextID         int
	nextBidNumber  int
	statusRaceLost bool // fuerza el escenario "otra transición ganó"
}

func newMemStore() *memStore {
	return &memStore{
		bids:          map[string]*entity.Bid{},
		grants:        map[string]bool{},
		nextBidNumber: 40000,
	}
}

func (s *memStore) genID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *memStore) addBid(b *entity.Bid) *entity.Bid {
	if b.ID == "" {
		b.ID = s.genID("bid")
	}
	s.bids[b.ID] = b
	return b
}

func (s *memStore) response(bidID, partnerID string, loi int) *entity.PartnerResponse {
	for _, r := range s.responses {
		if r.BidID == bidID && r.PartnerID == partnerID && r.LOI == loi {
			return r
		}
	}
	return nil
}

// ─── BidRepository ────────────────────────────────────────────────────────────

type fakeBidRepo struct{ s *memStore }

func (f *fakeBidRepo) Create(b *entity.Bid) error {
	f.s.nextBidNumber++
	b.BidNumber = f.s.nextBidNumber
	cp := *b
	f.s.addBid(&cp)
	return nil
}

func (f *fakeBidRepo) GetByID(id string) (*entity.Bid, error) {
	b, ok := f.s.bids[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBidRepo) GetByNumber(number int) (*entity.Bid, error) {
	for _, b := range f.s.bids {
		if b.BidNumber == number {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeBidRepo) UpdateDetails(b *entity.Bid) error {
	cur, ok := f.s.bids[b.ID]
	if !ok {
		return nil
	}
	cur.StudyName = b.StudyName
	cur.Methodology = b.Methodology
	cur.Team = b.Team
	cur.ClientID = b.ClientID
	cur.BidDate = b.BidDate
	cur.Countries = b.Countries
	cur.LOIs = b.LOIs
	cur.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeBidRepo) UpdateStatus(id, from, to string) (bool, error) {
	if f.s.statusRaceLost {
		return false, nil
	}
	b, ok := f.s.bids[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	return true, nil
}

func (f *fakeBidRepo) SetRejection(id, reason, comments string) error {
	if b, ok := f.s.bids[id]; ok {
		b.RejectionReason = reason
		b.RejectionComments = comments
	}
	return nil
}

func (f *fakeBidRepo) ClearRejection(id string) error {
	if b, ok := f.s.bids[id]; ok {
		b.RejectionReason = ""
		b.RejectionComments = ""
	}
	return nil
}

func (f *fakeBidRepo) UpsertPONumber(bidID, poNumber string) error {
	if b, ok := f.s.bids[bidID]; ok {
		b.PONumber = poNumber
	}
	return nil
}

// SaveAudiences guarda el set tal como llega (id nuevo para las audiencias
// sin id) y aplica el cascade de la FK: toda audiencia de respuesta cuyo
// audience_id dejó de existir se elimina con sus celdas.
func (f *fakeBidRepo) SaveAudiences(bidID string, audiences []entity.TargetAudience) error {
	b, ok := f.s.bids[bidID]
	if !ok {
		return nil
	}
	for i := range audiences {
		if audiences[i].ID == "" {
			audiences[i].ID = f.s.genID("aud")
		}
	}
	b.Audiences = append([]entity.TargetAudience(nil), audiences...)

	alive := map[string]bool{}
	for _, a := range audiences {
		alive[a.ID] = true
	}
	for _, r := range f.s.responses {
		if r.BidID != bidID {
			continue
		}
		kept := r.Audiences[:0]
		for _, ra := range r.Audiences {
			if alive[ra.AudienceID] {
				kept = append(kept, ra)
			}
		}
		r.Audiences = kept
	}
	return nil
}

func (f *fakeBidRepo) SetPartners(bidID string, partnerIDs []string) error {
	if b, ok := f.s.bids[bidID]; ok {
		b.PartnerIDs = partnerIDs
	}
	return nil
}

func (f *fakeBidRepo) List(repository.BidFilter) ([]*entity.Bid, int, error) {
	var out []*entity.Bid
	for _, b := range f.s.bids {
		cp := *b
		out = append(out, &cp)
	}
	return out, len(out), nil
}

// ─── ResponseRepository ───────────────────────────────────────────────────────

type fakeResponseRepo struct{ s *memStore }

func (f *fakeResponseRepo) ListByBid(bidID string) ([]*entity.PartnerResponse, error) {
	var out []*entity.PartnerResponse
	for _, r := range f.s.responses {
		if r.BidID == bidID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResponseRepo) Get(bidID, partnerID string, loi int) (*entity.PartnerResponse, error) {
	return f.s.response(bidID, partnerID, loi), nil
}

// CreateSkeleton replica la idempotencia del adaptador real: lo existente no
// se toca, solo se agregan audiencias y celdas faltantes.
func (f *fakeResponseRepo) CreateSkeleton(resp *entity.PartnerResponse) error {
	cur := f.s.response(resp.BidID, resp.PartnerID, resp.LOI)
	if cur == nil {
		cur = &entity.PartnerResponse{
			ID:        f.s.genID("resp"),
			BidID:     resp.BidID,
			PartnerID: resp.PartnerID,
			LOI:       resp.LOI,
		}
		f.s.responses = append(f.s.responses, cur)
	}
	for _, ra := range resp.Audiences {
		target := (*entity.ResponseAudience)(nil)
		for i := range cur.Audiences {
			if cur.Audiences[i].AudienceID == ra.AudienceID {
				target = &cur.Audiences[i]
				break
			}
		}
		if target == nil {
			cur.Audiences = append(cur.Audiences, entity.ResponseAudience{
				ID:         f.s.genID("ra"),
				ResponseID: cur.ID,
				AudienceID: ra.AudienceID,
			})
			target = &cur.Audiences[len(cur.Audiences)-1]
		}
		for _, c := range ra.Cells {
			exists := false
			for _, have := range target.Cells {
				if have.Country == c.Country {
					exists = true
					break
				}
			}
			if !exists {
				target.Cells = append(target.Cells, entity.ResponseCell{
					ID:                 f.s.genID("cell"),
					ResponseAudienceID: target.ID,
					Country:            c.Country,
					CommitmentType:     c.CommitmentType,
				})
			}
		}
	}
	return nil
}

func (f *fakeResponseRepo) SaveCommitments(resp *entity.PartnerResponse) error {
	cur := f.s.response(resp.BidID, resp.PartnerID, resp.LOI)
	if cur == nil {
		return nil
	}
	cur.Currency = resp.Currency
	cur.PMF = resp.PMF
	for _, ra := range resp.Audiences {
		for i := range cur.Audiences {
			if cur.Audiences[i].ID != ra.ID {
				continue
			}
			cur.Audiences[i].TimelineDays = ra.TimelineDays
			cur.Audiences[i].Comments = ra.Comments
			for _, c := range ra.Cells {
				for j := range cur.Audiences[i].Cells {
					if cur.Audiences[i].Cells[j].ID == c.ID {
						cur.Audiences[i].Cells[j].CommitmentType = c.CommitmentType
						cur.Audiences[i].Cells[j].Commitment = c.Commitment
						cur.Audiences[i].Cells[j].CPI = c.CPI
					}
				}
			}
		}
	}
	return nil
}

func (f *fakeResponseRepo) cell(k repository.CellKey) *entity.ResponseCell {
	r := f.s.response(k.BidID, k.PartnerID, k.LOI)
	if r == nil {
		return nil
	}
	for i := range r.Audiences {
		if r.Audiences[i].AudienceID != k.AudienceID {
			continue
		}
		for j := range r.Audiences[i].Cells {
			if r.Audiences[i].Cells[j].Country == k.Country {
				return &r.Audiences[i].Cells[j]
			}
		}
	}
	return nil
}

func (f *fakeResponseRepo) SetAllocation(k repository.CellKey, value int) (bool, error) {
	c := f.cell(k)
	if c == nil {
		return false, nil
	}
	c.Allocation = value
	return true, nil
}

func (f *fakeResponseRepo) SetDelivered(k repository.CellKey, n, qualityRejects int) (bool, error) {
	c := f.cell(k)
	if c == nil {
		return false, nil
	}
	c.NDelivered = &n
	c.QualityRejects = qualityRejects
	return true, nil
}

func (f *fakeResponseRepo) SetFinalCPI(k repository.CellKey, cpi decimal.Decimal) (bool, error) {
	c := f.cell(k)
	if c == nil {
		return false, nil
	}
	c.FinalCPI = &cpi
	return true, nil
}

func (f *fakeResponseRepo) SaveAudienceClosure(a *entity.ResponseAudience) error {
	for _, r := range f.s.responses {
		for i := range r.Audiences {
			if r.Audiences[i].ID != a.ID {
				continue
			}
			r.Audiences[i].FinalLOI = a.FinalLOI
			r.Audiences[i].FinalIR = a.FinalIR
			r.Audiences[i].FinalTimeline = a.FinalTimeline
			r.Audiences[i].CommunicationRating = a.CommunicationRating
			r.Audiences[i].EngagementRating = a.EngagementRating
			r.Audiences[i].ProblemSolvingRating = a.ProblemSolvingRating
			r.Audiences[i].AdditionalFeedback = a.AdditionalFeedback
			return nil
		}
	}
	return nil
}

func (f *fakeResponseRepo) SetFieldCloseDate(bidID, partnerID string, loi int, date time.Time) error {
	if r := f.s.response(bidID, partnerID, loi); r != nil {
		r.FieldCloseDate = &date
	}
	return nil
}

func (f *fakeResponseRepo) SaveInvoiceHeader(bidID, partnerID string, loi int, h repository.InvoiceHeader) error {
	if r := f.s.response(bidID, partnerID, loi); r != nil {
		r.InvoiceDate = h.InvoiceDate
		r.InvoiceSent = h.InvoiceSent
		r.InvoiceSerial = h.InvoiceSerial
		r.InvoiceNumber = h.InvoiceNumber
		r.InvoiceAmount = h.InvoiceAmount
	}
	return nil
}

func (f *fakeResponseRepo) MetricsByBids(bidIDs []string) (map[string]entity.BidListMetrics, error) {
	out := map[string]entity.BidListMetrics{}
	for _, id := range bidIDs {
		rs, _ := f.ListByBid(id)
		if len(rs) == 0 {
			continue
		}
		var m entity.BidListMetrics
		for _, r := range rs {
			for _, ra := range r.Audiences {
				m.QualityRejects += ra.TotalQualityRejects()
				for _, c := range ra.Cells {
					m.TotalAllocated += c.Allocation
					m.TotalDelivered += c.Delivered()
				}
			}
			m.InvoiceAmount = m.InvoiceAmount.Add(r.InvoiceAmount)
		}
		out[id] = m
	}
	return out, nil
}

// ─── AccessRepository ─────────────────────────────────────────────────────────

type fakeAccessRepo struct{ s *memStore }

func (f *fakeAccessRepo) CreateRequest(*entity.AccessRequest) error { return nil }
func (f *fakeAccessRepo) GetRequest(string) (*entity.AccessRequest, error) {
	return nil, nil
}
func (f *fakeAccessRepo) FindPendingRequest(string, string) (*entity.AccessRequest, error) {
	return nil, nil
}
func (f *fakeAccessRepo) ListRequestsByBid(string) ([]*entity.AccessRequest, error) {
	return nil, nil
}
func (f *fakeAccessRepo) ListPendingByTeam(string) ([]*entity.AccessRequest, error) {
	return nil, nil
}
func (f *fakeAccessRepo) ResolveRequest(string, string, string) error { return nil }
func (f *fakeAccessRepo) CreateGrant(g *entity.AccessGrant) error {
	f.s.grants[g.BidID+"|"+g.UserID] = true
	return nil
}
func (f *fakeAccessRepo) DeleteGrant(bidID, userID string) error {
	delete(f.s.grants, bidID+"|"+userID)
	return nil
}
func (f *fakeAccessRepo) HasGrant(bidID, userID string) (bool, error) {
	return f.s.grants[bidID+"|"+userID], nil
}
func (f *fakeAccessRepo) ListGrantsByBid(string) ([]*entity.AccessGrant, error) {
	return nil, nil
}

// ─── PartnerRepository ────────────────────────────────────────────────────────

type fakePartnerRepo struct{ names map[string]string }

func (f *fakePartnerRepo) Create(*entity.Partner) error             { return nil }
func (f *fakePartnerRepo) GetByID(string) (*entity.Partner, error)  { return nil, nil }
func (f *fakePartnerRepo) Update(*entity.Partner) error             { return nil }
func (f *fakePartnerRepo) Delete(string) error                      { return nil }
func (f *fakePartnerRepo) List(int, int) ([]*entity.Partner, error) { return nil, nil }
func (f *fakePartnerRepo) GetByIDs(ids []string) ([]*entity.Partner, error) {
	var out []*entity.Partner
	for _, id := range ids {
		out = append(out, &entity.Partner{ID: id, Name: f.names[id]})
	}
	return out, nil
}

// ─── TxRunner ─────────────────────────────────────────────────────────────────

// fakeTx ejecuta los callbacks sobre los mismos dobles; la atomicidad no se
// emula, solo el cableado de repos por transacción.
type fakeTx struct{ s *memStore }

func (t *fakeTx) Run(_ context.Context, fn func(repository.BidRepository, repository.ResponseRepository) error) error {
	return fn(&fakeBidRepo{s: t.s}, &fakeResponseRepo{s: t.s})
}

func (t *fakeTx) RunAccess(_ context.Context, fn func(repository.AccessRepository) error) error {
	return fn(&fakeAccessRepo{s: t.s})
}

func (t *fakeTx) RunProposal(_ context.Context, fn func(repository.ResponseRepository, repository.ProposalRepository) error) error {
	return fn(&fakeResponseRepo{s: t.s}, nil)
}
