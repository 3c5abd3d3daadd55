// Package bridge is the client facade an IDE extension uses to talk to its
// host. The host spawns the extension with EXTENSION_UUID, HOST, and PORT in
// the environment; New reads them and Load fetches the session payload from
// GET /api/extension/data/{uuid}, returning a Session handle.
//
// A Session is a read-only snapshot of editor state at load time: repository
// files, current file, selection, cursor, chat history, terminals, API keys,
// and settings. Action methods (Chat, Autocomplete, UpdateFile, ...) push
// commands back over POST /api/extension/response/{uuid}, each tagged with
// the request identifier captured at load time.
//
// Typical use:
//
//	b, err := bridge.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	sess, err := b.Load(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer sess.Close()
//
//	if prompt := sess.Prompt(); prompt != nil {
//		sess.Chat(ctx, "you said: "+*prompt)
//	}
//
// Every Load returns an independent Session, so concurrent workers each hold
// their own snapshot without coordination.
package bridge
