// Package fetch downloads the resource named by a decomposed URL over plain HTTP.
//
// Only the http scheme is supported, credentials are rejected and proxies are
// not used. Target turns a urlparse.URL into a request URL, Client.Get sends
// the request and checks for a 200 reply, and Response.Save streams the body
// to a writer.
//
// A Client can also keep a circuit breaker per host and report to
// Prometheus collectors created with NewMetrics.
//
//	target, err := fetch.Target(u)
//	if err != nil {
//		return err
//	}
//	resp, err := client.Get(ctx, target)
//	if err != nil {
//		return err
//	}
//	defer resp.Close()
//	result, err := resp.Save(ctx, os.Stdout)
package fetch
