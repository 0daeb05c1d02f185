package service

import (
	"context"

	"fabcost/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory repository stubs ───────────────────────────────────────────────

type stubHistoryRepo struct {
	entries []model.CostHistoryEntry
}

func (r *stubHistoryRepo) Create(_ context.Context, e *model.CostHistoryEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *stubHistoryRepo) ListByItem(_ context.Context, itemID uuid.UUID) ([]model.CostHistoryEntry, error) {
	var out []model.CostHistoryEntry
	for _, e := range r.entries {
		if e.ItemID == itemID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubHistoryRepo) ListByItemPaged(ctx context.Context, itemID uuid.UUID, page, limit int) ([]model.CostHistoryEntry, int64, error) {
	all, _ := r.ListByItem(ctx, itemID)
	return all, int64(len(all)), nil
}

func (r *stubHistoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

type stubCatalogRepo struct {
	parts      map[uuid.UUID]*model.Part
	fasteners  map[uuid.UUID]*model.Fastener
	electrical map[uuid.UUID]*model.ElectricalItem
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{
		parts:      make(map[uuid.UUID]*model.Part),
		fasteners:  make(map[uuid.UUID]*model.Fastener),
		electrical: make(map[uuid.UUID]*model.ElectricalItem),
	}
}

func (r *stubCatalogRepo) FindCostableItem(_ context.Context, id uuid.UUID) (*model.CatalogItem, error) {
	if p, ok := r.parts[id]; ok {
		return &model.CatalogItem{Kind: model.KindPart, ID: p.ID, SKU: p.SKU, Name: p.Name, CostFields: p.CostFields}, nil
	}
	if f, ok := r.fasteners[id]; ok {
		return &model.CatalogItem{Kind: model.KindFastener, ID: f.ID, SKU: f.SKU, Name: f.Name, CostFields: f.CostFields}, nil
	}
	if e, ok := r.electrical[id]; ok {
		return &model.CatalogItem{Kind: model.KindElectrical, ID: e.ID, SKU: e.SKU, Name: e.Name, CostFields: e.CostFields}, nil
	}
	return nil, nil
}

func (r *stubCatalogRepo) CreatePart(_ context.Context, p *model.Part) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.parts[p.ID] = p
	return nil
}

func (r *stubCatalogRepo) FindPart(_ context.Context, id uuid.UUID) (*model.Part, error) {
	p, ok := r.parts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubCatalogRepo) ListParts(_ context.Context, activeOnly bool) ([]model.Part, error) {
	var out []model.Part
	for _, p := range r.parts {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubCatalogRepo) UpdatePart(_ context.Context, p *model.Part) error {
	r.parts[p.ID] = p
	return nil
}

func (r *stubCatalogRepo) DeletePart(_ context.Context, id uuid.UUID) error {
	delete(r.parts, id)
	return nil
}

func (r *stubCatalogRepo) CreateFastener(_ context.Context, f *model.Fastener) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.fasteners[f.ID] = f
	return nil
}

func (r *stubCatalogRepo) FindFastener(_ context.Context, id uuid.UUID) (*model.Fastener, error) {
	f, ok := r.fasteners[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *stubCatalogRepo) ListFasteners(_ context.Context, activeOnly bool) ([]model.Fastener, error) {
	var out []model.Fastener
	for _, f := range r.fasteners {
		if activeOnly && !f.Active {
			continue
		}
		out = append(out, *f)
	}
	return out, nil
}

func (r *stubCatalogRepo) UpdateFastener(_ context.Context, f *model.Fastener) error {
	r.fasteners[f.ID] = f
	return nil
}

func (r *stubCatalogRepo) DeleteFastener(_ context.Context, id uuid.UUID) error {
	delete(r.fasteners, id)
	return nil
}

func (r *stubCatalogRepo) CreateElectrical(_ context.Context, e *model.ElectricalItem) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.electrical[e.ID] = e
	return nil
}

func (r *stubCatalogRepo) FindElectrical(_ context.Context, id uuid.UUID) (*model.ElectricalItem, error) {
	e, ok := r.electrical[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *stubCatalogRepo) ListElectrical(_ context.Context, activeOnly bool) ([]model.ElectricalItem, error) {
	var out []model.ElectricalItem
	for _, e := range r.electrical {
		if activeOnly && !e.Active {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubCatalogRepo) UpdateElectrical(_ context.Context, e *model.ElectricalItem) error {
	r.electrical[e.ID] = e
	return nil
}

func (r *stubCatalogRepo) DeleteElectrical(_ context.Context, id uuid.UUID) error {
	delete(r.electrical, id)
	return nil
}

type bomKey struct {
	ownerType model.BOMOwnerType
	ownerID   uuid.UUID
}

type stubBOMRepo struct {
	docs map[bomKey]*model.BillOfMaterials
}

func newStubBOMRepo() *stubBOMRepo {
	return &stubBOMRepo{docs: make(map[bomKey]*model.BillOfMaterials)}
}

func (r *stubBOMRepo) ForProduct(_ context.Context, productID uuid.UUID) (*model.BillOfMaterials, error) {
	if bom, ok := r.docs[bomKey{model.BOMOwnerProduct, productID}]; ok {
		return bom, nil
	}
	return &model.BillOfMaterials{}, nil
}

func (r *stubBOMRepo) ForSubAssembly(_ context.Context, subID uuid.UUID) (*model.BillOfMaterials, error) {
	if bom, ok := r.docs[bomKey{model.BOMOwnerSubAssembly, subID}]; ok {
		return bom, nil
	}
	return &model.BillOfMaterials{}, nil
}

func (r *stubBOMRepo) Save(_ context.Context, ownerType model.BOMOwnerType, ownerID uuid.UUID, bom *model.BillOfMaterials) error {
	r.docs[bomKey{ownerType, ownerID}] = bom
	return nil
}

func (r *stubBOMRepo) Delete(_ context.Context, ownerType model.BOMOwnerType, ownerID uuid.UUID) error {
	delete(r.docs, bomKey{ownerType, ownerID})
	return nil
}

func (r *stubBOMRepo) ReferencesComponent(_ context.Context, componentID uuid.UUID) (bool, error) {
	for _, bom := range r.docs {
		for _, lines := range [][]model.BOMEntry{bom.Parts, bom.Fasteners, bom.SubAssemblies, bom.Electrical} {
			for _, line := range lines {
				if line.ComponentID == componentID {
					return true, nil
				}
			}
		}
	}
	return false, nil
}

type stubAssemblyRepo struct {
	products map[uuid.UUID]*model.Product
	subs     map[uuid.UUID]*model.SubAssembly
}

func newStubAssemblyRepo() *stubAssemblyRepo {
	return &stubAssemblyRepo{
		products: make(map[uuid.UUID]*model.Product),
		subs:     make(map[uuid.UUID]*model.SubAssembly),
	}
}

func (r *stubAssemblyRepo) CreateProduct(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubAssemblyRepo) FindProduct(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubAssemblyRepo) ListProducts(_ context.Context, activeOnly bool) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubAssemblyRepo) ListCalculatedProducts(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Active && p.CostType == model.CostCalculated {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubAssemblyRepo) UpdateProduct(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubAssemblyRepo) DeleteProduct(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *stubAssemblyRepo) CreateSubAssembly(_ context.Context, s *model.SubAssembly) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.subs[s.ID] = s
	return nil
}

func (r *stubAssemblyRepo) FindSubAssembly(_ context.Context, id uuid.UUID) (*model.SubAssembly, error) {
	s, ok := r.subs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubAssemblyRepo) ListSubAssemblies(_ context.Context, activeOnly bool) ([]model.SubAssembly, error) {
	var out []model.SubAssembly
	for _, s := range r.subs {
		if activeOnly && !s.Active {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubAssemblyRepo) UpdateSubAssembly(_ context.Context, s *model.SubAssembly) error {
	r.subs[s.ID] = s
	return nil
}

func (r *stubAssemblyRepo) DeleteSubAssembly(_ context.Context, id uuid.UUID) error {
	delete(r.subs, id)
	return nil
}

type stubTemplateRepo struct {
	templates map[uuid.UUID]*model.DesignTemplate
}

func newStubTemplateRepo() *stubTemplateRepo {
	return &stubTemplateRepo{templates: make(map[uuid.UUID]*model.DesignTemplate)}
}

func (r *stubTemplateRepo) Create(_ context.Context, t *model.DesignTemplate) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.templates[t.ID] = t
	return nil
}

func (r *stubTemplateRepo) FindByID(_ context.Context, id uuid.UUID) (*model.DesignTemplate, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *stubTemplateRepo) List(_ context.Context) ([]model.DesignTemplate, error) {
	var out []model.DesignTemplate
	for _, t := range r.templates {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTemplateRepo) Update(_ context.Context, t *model.DesignTemplate) error {
	r.templates[t.ID] = t
	return nil
}

func (r *stubTemplateRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.templates, id)
	return nil
}

// fixedRate is a LabourRateProvider returning a constant cents-per-hour.
type fixedRate int64

func (f fixedRate) LabourRate(context.Context) (int64, error) { return int64(f), nil }
