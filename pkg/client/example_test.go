package client_test

import (
	"context"
	"fmt"
	"log"

	"github.com/agisfl/agisfl/pkg/client"
)

// Example demonstrates basic usage of the AgisFL client
func Example() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
	})

	ctx := context.Background()

	loginResp, err := c.Login(ctx, "analyst@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Logged in as: %s\n", loginResp.User.Email)

	incidents, _, err := c.Incidents().List(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Found %d incidents\n", len(incidents))
}

// ExampleIncidentService_List demonstrates listing open critical incidents
func ExampleIncidentService_List() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
	})

	_, err := c.Login(context.Background(), "analyst@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	incidents, page, err := c.Incidents().List(context.Background(), &client.IncidentListOptions{
		ListOptions: client.ListOptions{
			Page:     1,
			PageSize: 20,
		},
		Severity: "critical",
		Status:   "open",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Showing %d of %d critical incidents\n", len(incidents), page.TotalItems)
	for _, inc := range incidents {
		fmt.Printf("  - [%s] %s\n", inc.IncidentID, inc.Title)
	}
}

// ExampleThreatService_Mitigate demonstrates mitigating an active threat
func ExampleThreatService_Mitigate() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
	})

	_, err := c.Login(context.Background(), "analyst@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	threats, _, err := c.Threats().List(context.Background(), &client.ThreatListOptions{
		ActiveOnly: true,
		Severity:   "critical",
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, t := range threats {
		mitigated, err := c.Threats().Mitigate(context.Background(), t.ID)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Mitigated %s (%s)\n", mitigated.ThreatID, mitigated.Name)
	}
}

// ExampleFLService_Status demonstrates inspecting the training coordinator
func ExampleFLService_Status() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
	})

	_, err := c.Login(context.Background(), "analyst@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	status, err := c.FL().Status(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Training %s, round %d, accuracy %.3f\n", status.Status, status.Round, status.ModelAccuracy)
	for _, n := range status.Nodes {
		fmt.Printf("  %s (%s): %.3f\n", n.ID, n.Model, n.Accuracy)
	}
}

// ExampleClient_Health demonstrates checking API health
func ExampleClient_Health() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
	})

	health, err := c.Health(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("API status: %s\n", health.Status)
}
