package memory

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/crm-dashboard-api/internal/domain/entity"
)

// Datos base del generador sintético.
var (
	seedFirstNames = []string{
		"Ana", "Carlos", "Lucía", "Andrés", "María", "Jorge", "Valentina",
		"Santiago", "Camila", "Felipe", "Daniela", "Mateo", "Isabella", "Diego",
		"Sofía", "Juan", "Gabriela", "Sebastián", "Laura", "Ricardo",
	}
	seedLastNames = []string{
		"García", "Rodríguez", "Martínez", "López", "Hernández", "González",
		"Pérez", "Sánchez", "Ramírez", "Torres", "Castillo", "Vargas",
		"Moreno", "Rojas", "Jiménez", "Mendoza",
	}
	seedDomains = []string{"example.com", "mail.com", "corp.co", "negocio.co"}
	seedTags    = []string{
		entity.TagLead, entity.TagCustomer, entity.TagPartner,
		entity.TagOverseas, entity.TagVIP,
	}
)

// GenerateCustomers genera count clientes sintéticos con fechas de último
// contacto repartidas en los ~10 meses anteriores a now. El generador es
// determinista para un mismo seed (útil en tests y en cmd/seed).
func GenerateCustomers(count int, seed int64, now time.Time) []*entity.Customer {
	rng := rand.New(rand.NewSource(seed))
	out := make([]*entity.Customer, 0, count)
	for i := 0; i < count; i++ {
		first := seedFirstNames[rng.Intn(len(seedFirstNames))]
		last := seedLastNames[rng.Intn(len(seedLastNames))]
		id := uuid.New().String()

		tags := []string{seedTags[rng.Intn(len(seedTags))]}
		if rng.Intn(3) == 0 { // un tercio de los registros lleva segunda etiqueta
			extra := seedTags[rng.Intn(len(seedTags))]
			if extra != tags[0] {
				tags = append(tags, extra)
			}
		}

		contacted := now.AddDate(0, 0, -rng.Intn(300))
		out = append(out, &entity.Customer{
			ID:            id,
			Name:          first + " " + last,
			Avatar:        fmt.Sprintf("https://i.pravatar.cc/150?u=%s", id),
			Email:         fmt.Sprintf("%s.%s%d@%s", lower(first), lower(last), i, seedDomains[rng.Intn(len(seedDomains))]),
			Phone:         fmt.Sprintf("+57 30%d %03d %04d", rng.Intn(10), rng.Intn(1000), rng.Intn(10000)),
			Tags:          tags,
			LastContacted: entity.FormatDate(contacted),
		})
	}
	return out
}

// NewSeededStore construye un store poblado con count clientes sintéticos.
func NewSeededStore(count int) *CustomerStore {
	s := NewCustomerStore()
	for _, c := range GenerateCustomers(count, time.Now().UnixNano(), time.Now()) {
		_ = s.Create(c)
	}
	return s
}

// lower minúsculas ASCII-suficientes para armar emails (las tildes se dejan
// tal cual; son emails sintéticos).
func lower(s string) string {
	b := []rune(s)
	for i, r := range b {
		if r >= 'A' && r <= 'Z' {
			b[i] = r + ('a' - 'A')
		}
	}
	return string(b)
}
