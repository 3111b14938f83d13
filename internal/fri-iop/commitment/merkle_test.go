package commitment

import "testing"

func leavesFor(n int) [][]byte {
	leaves := make([][]byte, n)
	for i := range leaves {
		leaves[i] = []byte{byte(i), byte(i >> 8)}
	}
	return leaves
}

func TestCommitOpenVerifySHA3(t *testing.T) {
	tree, err := Commit(HashSHA3, leavesFor(8))
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	root := tree.Root()

	for i := 0; i < 8; i++ {
		path, err := tree.Open(i)
		if err != nil {
			t.Fatalf("Open(%d): %v", i, err)
		}
		if !Verify(HashSHA3, root, leavesFor(8)[i], path) {
			t.Fatalf("Verify failed for leaf %d", i)
		}
	}
}

func TestCommitOpenVerifyBLAKE3(t *testing.T) {
	tree, err := Commit(HashBLAKE3, leavesFor(8))
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	root := tree.Root()

	path, err := tree.Open(3)
	if err != nil {
		t.Fatalf("Open(3): %v", err)
	}
	if !Verify(HashBLAKE3, root, leavesFor(8)[3], path) {
		t.Fatal("Verify failed for leaf 3 under BLAKE3")
	}
}

func TestVerifyRejectsWrongLeaf(t *testing.T) {
	tree, err := Commit(HashSHA3, leavesFor(8))
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	root := tree.Root()
	path, err := tree.Open(2)
	if err != nil {
		t.Fatalf("Open(2): %v", err)
	}
	if Verify(HashSHA3, root, []byte("not the right leaf"), path) {
		t.Fatal("Verify accepted a tampered leaf")
	}
}

func TestVerifyRejectsWrongRoot(t *testing.T) {
	treeA, err := Commit(HashSHA3, leavesFor(8))
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	treeB, err := Commit(HashSHA3, leavesFor(4))
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	path, err := treeA.Open(0)
	if err != nil {
		t.Fatalf("Open(0): %v", err)
	}
	if Verify(HashSHA3, treeB.Root(), leavesFor(8)[0], path) {
		t.Fatal("Verify accepted a path against the wrong root")
	}
}

func TestCommitOddLeafCount(t *testing.T) {
	tree, err := Commit(HashSHA3, leavesFor(5))
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	for i := 0; i < 5; i++ {
		path, err := tree.Open(i)
		if err != nil {
			t.Fatalf("Open(%d): %v", i, err)
		}
		if !Verify(HashSHA3, tree.Root(), leavesFor(5)[i], path) {
			t.Fatalf("Verify failed for leaf %d in odd-sized tree", i)
		}
	}
}

func TestCommitRejectsEmpty(t *testing.T) {
	if _, err := Commit(HashSHA3, nil); err == nil {
		t.Fatal("expected error committing an empty leaf set")
	}
}

func TestHashFromBytesRejectsWrongLength(t *testing.T) {
	if _, err := HashFromBytes([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error decoding a short hash")
	}
}
