// Package fetch provides a fetch-style HTTP request function bound to an
// injected transport.
//
// A Client is constructed once around a transport.Transport and reused for
// any number of calls:
//
//	client, err := fetch.New(transport.NewNative())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := client.Do(ctx, "https://api.example.com/users", &fetch.RequestOptions{
//		Method: "post",
//		Body:   `{"name": "test"}`,
//	})
//
// Each call issues exactly one exchange and yields one immutable Response
// whose body is fully buffered in memory. Text, JSON, Blob and the other
// accessors are repeatable views over the same buffer.
//
// Known limitations, kept deliberately: request bodies are restricted to
// strings and byte slices and are always sent as text/plain; there is no
// streaming, cookie handling or redirect tracking at this layer.
package fetch
