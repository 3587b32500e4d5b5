package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/crm-dashboard-api/internal/infrastructure/csvio"
	"github.com/jhoicas/crm-dashboard-api/internal/infrastructure/memory"
)

// Genera un CSV de clientes sintéticos compatible con el endpoint de import.
//
//	go run ./cmd/seed -n 100 -o clientes.csv
func main() {
	var (
		count = flag.Int("n", 40, "cantidad de registros a generar")
		out   = flag.String("o", "customers.csv", "archivo CSV de salida")
		seed  = flag.Int64("seed", 1, "semilla del generador")
	)
	flag.Parse()

	customers := memory.GenerateCustomers(*count, *seed, time.Now())

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintln(os.Stderr, "crear archivo:", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := csvio.WriteCustomers(f, customers); err != nil {
		fmt.Fprintln(os.Stderr, "escribir CSV:", err)
		os.Exit(1)
	}
	fmt.Printf("%d registros escritos en %s\n", len(customers), *out)
}
