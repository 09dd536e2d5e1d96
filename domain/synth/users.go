package synth

import (
	"fmt"
	"math/rand"

	"fraudgraph/domain/model"
)

// sharedChance holds the probability that a user draws a given attribute from
// the shared pool instead of getting a unique value. Pools are deliberately
// small so a slice of the population collides, which is what the shared
// attribute linking feeds on.
var sharedChance = map[string]float64{
	"email":         0.05,
	"phone":         0.04,
	"address":       0.03,
	"paymentMethod": 0.03,
}

// GenerateUsers builds a population of count users with sequential IDs and a
// controlled rate of shared attribute values.
func (g *Generator) GenerateUsers(count int) []model.User {
	sharedEmails := g.pool(count, 0.02, randomEmail)
	sharedPhones := g.pool(count, 0.02, randomPhone)
	sharedAddresses := g.pool(count, 0.02, randomAddress)
	sharedPayments := g.pool(count, 0.015, randomPaymentMethod)

	users := make([]model.User, 0, count)
	for i := 0; i < count; i++ {
		users = append(users, model.User{
			ID:            fmt.Sprintf("user-%d", i+1),
			Name:          randomName(g.rng),
			Email:         g.draw(sharedEmails, sharedChance["email"], randomEmail),
			Phone:         g.draw(sharedPhones, sharedChance["phone"], randomPhone),
			Address:       g.draw(sharedAddresses, sharedChance["address"], randomAddress),
			PaymentMethod: g.draw(sharedPayments, sharedChance["paymentMethod"], randomPaymentMethod),
		})
	}
	return users
}

func (g *Generator) pool(count int, ratio float64, gen func(*rand.Rand) string) []string {
	size := int(float64(count) * ratio)
	if size < 2 {
		size = 2
	}
	values := make([]string, size)
	for i := range values {
		values[i] = gen(g.rng)
	}
	return values
}

func (g *Generator) draw(pool []string, chance float64, gen func(*rand.Rand) string) string {
	if g.rng.Float64() < chance {
		return pool[g.rng.Intn(len(pool))]
	}
	return gen(g.rng)
}
