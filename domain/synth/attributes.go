package synth

import (
	"fmt"
	"math/rand"
	"strings"
)

var firstNames = []string{
	"Ava", "Noah", "Mia", "Liam", "Zoe", "Ethan", "Ruby", "Mason", "Ivy", "Lucas",
	"Nora", "Owen", "Elsa", "Jack", "Lena", "Felix", "Iris", "Hugo", "Cora", "Miles",
}

var lastNames = []string{
	"Hart", "Bell", "Cole", "Drake", "Ellis", "Frost", "Gray", "Hayes", "Iver", "Jones",
	"Kline", "Lowe", "Marsh", "Nash", "Olsen", "Price", "Quinn", "Reyes", "Stone", "Tate",
}

var banks = []string{"northbank", "meridian", "atlaspay", "crestcard", "unionline"}

// poolSize scales an attribute pool with the population, with a floor so small
// runs still get collisions.
func poolSize(n int, ratio float64) int {
	size := int(float64(n) * ratio)
	if size < 30 {
		size = 30
	}
	return size
}

func randomName(rng *rand.Rand) string {
	return firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
}

func randomEmail(rng *rand.Rand) string {
	return fmt.Sprintf("%s.%s%d@example.com",
		strings.ToLower(firstNames[rng.Intn(len(firstNames))]),
		strings.ToLower(lastNames[rng.Intn(len(lastNames))]),
		rng.Intn(10000))
}

func randomPhone(rng *rand.Rand) string {
	return fmt.Sprintf("+1-%03d-%03d-%04d", 200+rng.Intn(800), rng.Intn(1000), rng.Intn(10000))
}

func randomAddress(rng *rand.Rand) string {
	return fmt.Sprintf("%d %s St", 1+rng.Intn(9999), lastNames[rng.Intn(len(lastNames))])
}

func randomPaymentMethod(rng *rand.Rand) string {
	return fmt.Sprintf("%s-%04d", banks[rng.Intn(len(banks))], rng.Intn(10000))
}

func randomAmount(rng *rand.Rand) float64 {
	// 5.00 to 4999.99, two decimal places.
	cents := 500 + rng.Intn(499500)
	return float64(cents) / 100
}

func ipAddresses(rng *rand.Rand, count int) []string {
	ips := make([]string, count)
	for i := range ips {
		ips[i] = fmt.Sprintf("%d.%d.%d.%d", 1+rng.Intn(223), rng.Intn(256), rng.Intn(256), 1+rng.Intn(254))
	}
	return ips
}

func deviceIDs(count int) []string {
	devices := make([]string, count)
	for i := range devices {
		devices[i] = fmt.Sprintf("device-%d", i+1)
	}
	return devices
}
