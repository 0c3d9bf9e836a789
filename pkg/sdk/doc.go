// Package nearby is an embeddable Go client for the nearby location service:
// it ingests postal codes and locations into Redis, Valkey or memory and answers
// "which locations are closest to this postal code" without running the HTTP server.
//
//	client, _ := nearby.New(ctx, nearby.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	client.ImportPostalCodes(ctx, codes, 0)
//	client.ImportLocations(ctx, locations, 0)
//
//	res, _ := client.Search(ctx, "10001", 5)
//	for _, hit := range res.Results {
//	    fmt.Printf("%.2f mi  %s\n", hit.DistanceMiles, hit.Location.Name)
//	}
package nearby
