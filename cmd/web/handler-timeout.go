package main

// timeoutBody is written by http.TimeoutHandler when a handler runs past its deadline.
const timeoutBody = `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Timeout - Fitness Pro</title></head>
<body><h1>The request took too long</h1><p>Please try again in a moment.</p></body>
</html>`
