package lookup

import "gorm.io/gorm"

// LookupRepository exposes the read-only reference tables.
type LookupRepository interface {
	ListStates() ([]State, error)
	ListCitiesByState(stateID uint) ([]City, error)
	ListMatchTypes() ([]MatchType, error)
	ListPositions() ([]Position, error)
	Seed() error
}

type lookupRepository struct {
	db *gorm.DB
}

func NewLookupRepository(db *gorm.DB) LookupRepository {
	return &lookupRepository{db: db}
}

func (r *lookupRepository) ListStates() ([]State, error) {
	var states []State
	if err := r.db.Order("name asc").Find(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}

func (r *lookupRepository) ListCitiesByState(stateID uint) ([]City, error) {
	var cities []City
	if err := r.db.Where("state_id = ?", stateID).Order("name asc").Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *lookupRepository) ListMatchTypes() ([]MatchType, error) {
	var types []MatchType
	if err := r.db.Order("id asc").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *lookupRepository) ListPositions() ([]Position, error) {
	var positions []Position
	if err := r.db.Order("id asc").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

// Seed inserts the reference rows when the tables are empty. There is no write
// path for these tables beyond this.
func (r *lookupRepository) Seed() error {
	var count int64
	if err := r.db.Model(&Position{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		positions := []Position{
			{Name: "goleiro"}, {Name: "zagueiro"}, {Name: "lateral"},
			{Name: "volante"}, {Name: "meia"}, {Name: "atacante"},
		}
		if err := r.db.Create(&positions).Error; err != nil {
			return err
		}
	}

	if err := r.db.Model(&MatchType{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		types := []MatchType{{Name: "society"}, {Name: "futsal"}, {Name: "campo"}, {Name: "areia"}}
		if err := r.db.Create(&types).Error; err != nil {
			return err
		}
	}

	if err := r.db.Model(&State{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		states := []State{
			{Name: "São Paulo", UF: "SP"},
			{Name: "Rio de Janeiro", UF: "RJ"},
			{Name: "Minas Gerais", UF: "MG"},
			{Name: "Paraná", UF: "PR"},
			{Name: "Rio Grande do Sul", UF: "RS"},
		}
		if err := r.db.Create(&states).Error; err != nil {
			return err
		}
		for i := range states {
			var cities []City
			switch states[i].UF {
			case "SP":
				cities = []City{{Name: "São Paulo", StateID: states[i].ID}, {Name: "Campinas", StateID: states[i].ID}, {Name: "Santos", StateID: states[i].ID}}
			case "RJ":
				cities = []City{{Name: "Rio de Janeiro", StateID: states[i].ID}, {Name: "Niterói", StateID: states[i].ID}}
			case "MG":
				cities = []City{{Name: "Belo Horizonte", StateID: states[i].ID}, {Name: "Uberlândia", StateID: states[i].ID}}
			case "PR":
				cities = []City{{Name: "Curitiba", StateID: states[i].ID}, {Name: "Londrina", StateID: states[i].ID}}
			case "RS":
				cities = []City{{Name: "Porto Alegre", StateID: states[i].ID}, {Name: "Caxias do Sul", StateID: states[i].ID}}
			}
			if err := r.db.Create(&cities).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
