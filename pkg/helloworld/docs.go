package helloworld

// TopicManagerDocumentation describes the admission rules of tm_helloworld.
const TopicManagerDocumentation = `# HelloWorld Topic Manager Documentation

## Overview
The **HelloWorld Topic Manager** is a lightweight overlay protocol that lets users broadcast a short, UTF-8 encoded message to the world using BRC-48 Pay-to-Push-Drop outputs. Each eligible transaction output becomes a permanent, verifiable "shout-out" on-chain.

| Requirement | Description |
|-------------|-------------|
| **Protocol ID** | "HelloWorld" |
| **Fields** | *At least one; the first field is the message* |
| **Message length** | >= 2 UTF-8 characters |
| **Signature** | ECDSA over the concatenated field data, verified against the locking public key |

Outputs failing any requirement are ignored. Spent HelloWorld outputs are never retained.
`

// LookupServiceDocumentation describes the queries accepted by ls_helloworld.
const LookupServiceDocumentation = `# HelloWorld Lookup Service Documentation

## Overview
The **HelloWorld Lookup Service** (service ID: ` + "`ls_helloworld`" + `) lets clients search the on-chain *Hello-World* messages that were indexed by the **HelloWorld Topic Manager**. Each record represents a Pay-to-Push-Drop output whose first field is a UTF-8 message of at least two characters.

## Query

| Field | Type | Description |
|-------|------|-------------|
| ` + "`message`" + ` | string | Case-insensitive substring to search for. When omitted every message is listed. |
| ` + "`limit`" + ` | number | Maximum number of records, default 50. |
| ` + "`skip`" + ` | number | Number of records to skip, default 0. |
| ` + "`startDate`" + ` | string | Earliest creation time, inclusive (RFC 3339 or ` + "`YYYY-MM-DD`" + `). |
| ` + "`endDate`" + ` | string | Latest creation time, inclusive (RFC 3339 or ` + "`YYYY-MM-DD`" + `). |
| ` + "`sortOrder`" + ` | string | ` + "`desc`" + ` (default) or ` + "`asc`" + ` by creation time. |

Date bounds apply only when ` + "`message`" + ` is omitted.

## Answer
A freeform answer whose result is a list of ` + "`{ txid, outputIndex, message, createdAt }`" + ` records.
`
